package demo

import (
	"context"
	"fmt"

	"github.com/petasbytes/toolloop/tools"
)

type spellArgs struct {
	PersonName string `json:"person_name" jsonschema_description:"The name of the person to cast the spell on"`
}

type SpellCast struct {
	Spell   string `json:"spell"`
	Target  string `json:"target"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func registerSpells(reg *tools.Registry, d Deps) error {
	cast := func(spell, status, message, target string) SpellCast {
		d.Log.Info("spell cast", "spell", spell, "target", target)
		return SpellCast{Spell: spell, Target: target, Status: status, Message: message}
	}

	if err := reg.Register("kill", tools.Func(func(_ context.Context, in spellArgs) (SpellCast, error) {
		return cast("Avada kedavra", "cast", "Avada kedavra "+in.PersonName, in.PersonName), nil
	}), "Cast a killing spell on a person"); err != nil {
		return err
	}
	return reg.Register("disarm", tools.Func(func(_ context.Context, in spellArgs) (SpellCast, error) {
		msg := fmt.Sprintf("Expelliarmus! %s's wand flies away.", in.PersonName)
		return cast("Expelliarmus", "disarmed", msg, in.PersonName), nil
	}), "Cast a disarming spell to remove a person's wand")
}
