package demo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools"
)

const (
	applianceKeyPrefix = "appliances:"
	daysPerMonth       = 30
)

// ApplianceRate is a sample hourly running cost in USD.
type ApplianceRate struct {
	Name        string  `json:"name"`
	CostPerHour float64 `json:"cost_per_hour"`
}

var applianceRates = []ApplianceRate{
	{"Refrigerator", 0.03},
	{"Air Conditioner", 0.50},
	{"Washing Machine", 0.15},
	{"Microwave Oven", 0.12},
	{"Television", 0.05},
	{"Laptop", 0.02},
	{"Electric Kettle", 0.10},
	{"Ceiling Fan", 0.01},
	{"Heater", 0.40},
	{"Dishwasher", 0.20},
}

func applianceRate(name string) (float64, bool) {
	for _, a := range applianceRates {
		if a.Name == name {
			return a.CostPerHour, true
		}
	}
	return 0, false
}

type ApplianceUsage struct {
	Name        string  `json:"name"`
	HoursPerDay float64 `json:"hours_per_day"`
	Count       int     `json:"count"`
}

type usageArgs struct {
	Name        string  `json:"name" jsonschema_description:"Name of the appliance (must match one of the sample appliances)"`
	HoursPerDay float64 `json:"hours_per_day" jsonschema_description:"Number of hours per day the appliance is used"`
	Count       int     `json:"count" jsonschema_description:"Number of such appliances"`
}

type UsageUpdate struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Current *ApplianceUsage `json:"current,omitempty"`
}

type ApplianceCost struct {
	Name        string  `json:"name"`
	MonthlyCost float64 `json:"monthly_cost"`
	HoursPerDay float64 `json:"hours_per_day"`
	Count       int     `json:"count"`
	CostPerHour float64 `json:"cost_per_hour"`
}

type CostReport struct {
	Breakdown        []ApplianceCost `json:"breakdown"`
	TotalMonthlyCost float64         `json:"total_monthly_cost"`
}

type ApplianceList struct {
	Appliances []string `json:"appliances"`
	Count      int      `json:"count"`
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

func registerAppliances(reg *tools.Registry, d Deps) error {
	if err := reg.Register("add_or_update_appliance_usage", tools.Func(func(ctx context.Context, in usageArgs) (UsageUpdate, error) {
		if _, ok := applianceRate(in.Name); !ok {
			return UsageUpdate{Status: "error", Message: fmt.Sprintf("'%s' is not a recognized appliance.", in.Name)}, nil
		}
		u := ApplianceUsage{Name: in.Name, HoursPerDay: in.HoursPerDay, Count: in.Count}
		if err := store.PutJSON(ctx, d.Store, applianceKeyPrefix+in.Name, u); err != nil {
			return UsageUpdate{}, err
		}
		return UsageUpdate{Status: "success", Message: fmt.Sprintf("Usage for '%s' updated.", in.Name), Current: &u}, nil
	}), "Add or update an appliance usage entry (hours per day and count) in the user's appliance list."); err != nil {
		return err
	}

	if err := reg.Register("calculate_monthly_appliance_cost", tools.Func(func(ctx context.Context, _ struct{}) (CostReport, error) {
		usages, err := loadUsages(ctx, d.Store)
		if err != nil {
			return CostReport{}, err
		}
		report := CostReport{Breakdown: []ApplianceCost{}}
		total := 0.0
		for _, u := range usages {
			rate, ok := applianceRate(u.Name)
			if !ok {
				continue
			}
			monthly := rate * u.HoursPerDay * float64(u.Count) * daysPerMonth
			report.Breakdown = append(report.Breakdown, ApplianceCost{
				Name:        u.Name,
				MonthlyCost: roundCents(monthly),
				HoursPerDay: u.HoursPerDay,
				Count:       u.Count,
				CostPerHour: rate,
			})
			total += monthly
		}
		report.TotalMonthlyCost = roundCents(total)
		return report, nil
	}), "Calculate the total monthly cost for all appliances in the user's appliance list."); err != nil {
		return err
	}

	return reg.Register("list_user_appliances", tools.Func(func(ctx context.Context, _ struct{}) (ApplianceList, error) {
		usages, err := loadUsages(ctx, d.Store)
		if err != nil {
			return ApplianceList{}, err
		}
		out := ApplianceList{Appliances: make([]string, 0, len(usages))}
		for _, u := range usages {
			out.Appliances = append(out.Appliances, u.Name)
		}
		out.Count = len(out.Appliances)
		return out, nil
	}), "List all appliances currently in the user's appliance list.")
}

func loadUsages(ctx context.Context, s store.Store) ([]ApplianceUsage, error) {
	keys, err := s.Keys(ctx, applianceKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]ApplianceUsage, 0, len(keys))
	for _, k := range keys {
		var u ApplianceUsage
		if err := store.GetJSON(ctx, s, k, &u); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if u.Name == "" {
			u.Name = strings.TrimPrefix(k, applianceKeyPrefix)
		}
		out = append(out, u)
	}
	return out, nil
}
