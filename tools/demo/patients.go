package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools"
)

const patientKeyPrefix = "patients:"

// Minimum age excluded from the study.
const studyAgeLimit = 18

type Patient struct {
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
	Age    *int   `json:"age,omitempty"`
}

type patientArgs struct {
	Name string `json:"name" jsonschema_description:"The patient's name"`
}

type genderArgs struct {
	Name   string `json:"name" jsonschema_description:"The patient's name"`
	Gender string `json:"gender" jsonschema_description:"The patient's gender"`
}

type ageArgs struct {
	Name string `json:"name" jsonschema_description:"The patient's name"`
	Age  int    `json:"age" jsonschema_description:"The patient's age"`
}

type messageArgs struct {
	Name    string `json:"name" jsonschema_description:"The patient's name"`
	Message string `json:"message" jsonschema_description:"The message to send"`
}

type Eligibility struct {
	Name     string `json:"name"`
	Eligible bool   `json:"eligible"`
}

type MessageReceipt struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func registerPatients(reg *tools.Registry, d Deps) error {
	load := func(ctx context.Context, name string) (Patient, error) {
		var p Patient
		err := store.GetJSON(ctx, d.Store, patientKeyPrefix+name, &p)
		if errors.Is(err, store.ErrNotFound) {
			return p, fmt.Errorf("patient %q not found", name)
		}
		return p, err
	}
	save := func(ctx context.Context, p Patient) (Patient, error) {
		return p, store.PutJSON(ctx, d.Store, patientKeyPrefix+p.Name, p)
	}

	if err := reg.Register("create_patient", tools.Func(func(ctx context.Context, in patientArgs) (Patient, error) {
		if in.Name == "" {
			return Patient{}, errors.New("patient name is required")
		}
		return save(ctx, Patient{Name: in.Name})
	}), "Create a new patient record"); err != nil {
		return err
	}

	if err := reg.Register("add_patient_gender", tools.Func(func(ctx context.Context, in genderArgs) (Patient, error) {
		p, err := load(ctx, in.Name)
		if err != nil {
			return Patient{}, err
		}
		p.Gender = in.Gender
		return save(ctx, p)
	}), "Add gender information to a patient record"); err != nil {
		return err
	}

	if err := reg.Register("add_patient_age", tools.Func(func(ctx context.Context, in ageArgs) (Patient, error) {
		p, err := load(ctx, in.Name)
		if err != nil {
			return Patient{}, err
		}
		age := in.Age
		p.Age = &age
		return save(ctx, p)
	}), "Add age information to a patient record"); err != nil {
		return err
	}

	if err := reg.Register("is_eligible_for_study", tools.Func(func(ctx context.Context, in patientArgs) (Eligibility, error) {
		p, err := load(ctx, in.Name)
		if err != nil {
			return Eligibility{}, err
		}
		if p.Age == nil {
			return Eligibility{}, fmt.Errorf("patient %q has no age recorded", in.Name)
		}
		return Eligibility{Name: p.Name, Eligible: *p.Age < studyAgeLimit}, nil
	}), "Check if a patient is eligible for a study"); err != nil {
		return err
	}

	return reg.Register("send_message_to_patient", tools.Func(func(_ context.Context, in messageArgs) (MessageReceipt, error) {
		d.Log.Info("sending message to patient", "name", in.Name, "message", in.Message)
		return MessageReceipt{Name: in.Name, Message: in.Message, Status: "sent"}, nil
	}), "Send a message to a patient")
}
