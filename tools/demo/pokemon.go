package demo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools"
)

const pokemonKeyPrefix = "pokemon:"

var pokemonTypes = []string{"Fire", "Water", "Grass"}

var typeAdvantage = map[string]string{
	"Fire":  "Water",
	"Water": "Grass",
	"Grass": "Fire",
}

type TypeList struct {
	Types []string `json:"types"`
	Count int      `json:"count"`
}

type haveArgs struct {
	PokemonName string `json:"pokemon_name" jsonschema_description:"The name of the Pokémon to add"`
	PokemonType string `json:"pokemon_type" jsonschema:"enum=Fire,enum=Water,enum=Grass" jsonschema_description:"The type of the Pokémon (Fire, Water, or Grass)"`
	TrainerName string `json:"trainer_name" jsonschema_description:"The name of the Pokémon's trainer"`
}

type typeArgs struct {
	PokemonType string `json:"pokemon_type" jsonschema:"enum=Fire,enum=Water,enum=Grass" jsonschema_description:"The Pokémon type to find an advantage against (Fire, Water, or Grass)"`
}

type trainerArgs struct {
	TrainerName string `json:"trainer_name" jsonschema_description:"The name of the trainer whose Pokémon to list"`
}

// PokemonResult is shared by the pokemon tools; unused fields are omitted.
type PokemonResult struct {
	Status           string            `json:"status,omitempty"`
	Message          string            `json:"message"`
	Pokemon          string            `json:"pokemon,omitempty"`
	Type             string            `json:"type,omitempty"`
	Trainer          string            `json:"trainer,omitempty"`
	TrainerCount     int               `json:"trainer_pokemon_count,omitempty"`
	OriginalType     string            `json:"original_type,omitempty"`
	AdvantageousType string            `json:"advantageous_type,omitempty"`
	Belt             map[string]string `json:"belt,omitempty"`
	List             []string          `json:"pokemon_list,omitempty"`
	Count            *int              `json:"count,omitempty"`
}

func invalidType(t string) PokemonResult {
	return PokemonResult{
		Status:  "error",
		Message: fmt.Sprintf("Invalid Pokémon type: %s. Valid types are: %s", t, strings.Join(pokemonTypes, ", ")),
	}
}

func registerPokemon(reg *tools.Registry, d Deps) error {
	belt := func(ctx context.Context, trainer string) (map[string]string, error) {
		m := map[string]string{}
		err := store.GetJSON(ctx, d.Store, pokemonKeyPrefix+trainer, &m)
		if errors.Is(err, store.ErrNotFound) {
			return map[string]string{}, nil
		}
		return m, err
	}

	if err := reg.Register("list_pokemon_types", tools.Func(func(context.Context, struct{}) (TypeList, error) {
		return TypeList{Types: slices.Clone(pokemonTypes), Count: len(pokemonTypes)}, nil
	}), "List all available Pokémon types"); err != nil {
		return err
	}

	if err := reg.Register("have_pokemon", tools.Func(func(ctx context.Context, in haveArgs) (PokemonResult, error) {
		if !slices.Contains(pokemonTypes, in.PokemonType) {
			return invalidType(in.PokemonType), nil
		}
		b, err := belt(ctx, in.TrainerName)
		if err != nil {
			return PokemonResult{}, err
		}
		b[in.PokemonName] = in.PokemonType
		if err := store.PutJSON(ctx, d.Store, pokemonKeyPrefix+in.TrainerName, b); err != nil {
			return PokemonResult{}, err
		}
		return PokemonResult{
			Status:       "added",
			Message:      fmt.Sprintf("%s now has %s (%s)!", in.TrainerName, in.PokemonName, in.PokemonType),
			Pokemon:      in.PokemonName,
			Type:         in.PokemonType,
			Trainer:      in.TrainerName,
			TrainerCount: len(b),
		}, nil
	}), "Add a Pokémon to a trainer's collection"); err != nil {
		return err
	}

	if err := reg.Register("get_advantageous_type", tools.Func(func(_ context.Context, in typeArgs) (PokemonResult, error) {
		adv, ok := typeAdvantage[in.PokemonType]
		if !ok {
			return invalidType(in.PokemonType), nil
		}
		return PokemonResult{
			Message:          fmt.Sprintf("%s type has an advantage against %s type!", adv, in.PokemonType),
			OriginalType:     in.PokemonType,
			AdvantageousType: adv,
		}, nil
	}), "Get the type that has an advantage against a given type"); err != nil {
		return err
	}

	return reg.Register("list_trainer_pokemon", tools.Func(func(ctx context.Context, in trainerArgs) (PokemonResult, error) {
		b, err := belt(ctx, in.TrainerName)
		if err != nil {
			return PokemonResult{}, err
		}
		count := len(b)
		if count == 0 {
			return PokemonResult{
				Message: fmt.Sprintf("Trainer %s has no Pokémon yet!", in.TrainerName),
				Trainer: in.TrainerName,
				Belt:    map[string]string{},
				Count:   &count,
			}, nil
		}
		names := make([]string, 0, count)
		for name := range b {
			names = append(names, name)
		}
		slices.Sort(names)
		list := make([]string, 0, count)
		for _, name := range names {
			list = append(list, fmt.Sprintf("%s (%s)", name, b[name]))
		}
		return PokemonResult{
			Message: fmt.Sprintf("%s's Pokémon: %s", in.TrainerName, strings.Join(list, ", ")),
			Trainer: in.TrainerName,
			Belt:    b,
			List:    list,
			Count:   &count,
		}, nil
	}), "List all Pokémon that a given trainer has")
}
