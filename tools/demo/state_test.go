package demo_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppliances_CostReport(t *testing.T) {
	reg := newRegistry(t, newDeps(t), demo.Appliances)

	up := mustCall(t, reg, "add_or_update_appliance_usage", map[string]any{
		"name": "Air Conditioner", "hours_per_day": 8, "count": 2,
	}).(demo.UsageUpdate)
	assert.Equal(t, "success", up.Status)
	require.NotNil(t, up.Current)
	assert.Equal(t, 2, up.Current.Count)

	mustCall(t, reg, "add_or_update_appliance_usage", map[string]any{
		"name": "Laptop", "hours_per_day": 5.5, "count": 1,
	})
	// Updating replaces the earlier entry.
	mustCall(t, reg, "add_or_update_appliance_usage", map[string]any{
		"name": "Laptop", "hours_per_day": 4, "count": 1,
	})

	bad := mustCall(t, reg, "add_or_update_appliance_usage", map[string]any{
		"name": "Toaster", "hours_per_day": 1, "count": 1,
	}).(demo.UsageUpdate)
	assert.Equal(t, "error", bad.Status)
	assert.Equal(t, "'Toaster' is not a recognized appliance.", bad.Message)

	report := mustCall(t, reg, "calculate_monthly_appliance_cost", nil).(demo.CostReport)
	require.Len(t, report.Breakdown, 2)
	// 0.50 * 8 * 2 * 30 = 240; 0.02 * 4 * 1 * 30 = 2.4
	assert.Equal(t, "Air Conditioner", report.Breakdown[0].Name)
	assert.InDelta(t, 240.0, report.Breakdown[0].MonthlyCost, 1e-9)
	assert.InDelta(t, 2.4, report.Breakdown[1].MonthlyCost, 1e-9)
	assert.InDelta(t, 242.4, report.TotalMonthlyCost, 1e-9)

	list := mustCall(t, reg, "list_user_appliances", nil).(demo.ApplianceList)
	assert.Equal(t, []string{"Air Conditioner", "Laptop"}, list.Appliances)
	assert.Equal(t, 2, list.Count)
}

func TestAppliances_EmptyReport(t *testing.T) {
	reg := newRegistry(t, newDeps(t), demo.Appliances)
	report := mustCall(t, reg, "calculate_monthly_appliance_cost", nil).(demo.CostReport)
	assert.Empty(t, report.Breakdown)
	assert.Equal(t, 0.0, report.TotalMonthlyCost)
}

func TestAppliances_RedisBackedStatePersistsAcrossRegistries(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := store.NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rs.Close() })

	deps := newDeps(t)
	deps.Store = rs
	first := newRegistry(t, deps, demo.Appliances)
	mustCall(t, first, "add_or_update_appliance_usage", map[string]any{
		"name": "Heater", "hours_per_day": 2, "count": 1,
	})

	second := newRegistry(t, deps, demo.Appliances)
	list := mustCall(t, second, "list_user_appliances", nil).(demo.ApplianceList)
	assert.Equal(t, []string{"Heater"}, list.Appliances)

	keys, err := rs.Keys(context.Background(), "appliances:")
	require.NoError(t, err)
	assert.Equal(t, []string{"appliances:Heater"}, keys)
}

func TestPokemon(t *testing.T) {
	reg := newRegistry(t, newDeps(t), demo.Pokemon)

	types := mustCall(t, reg, "list_pokemon_types", nil).(demo.TypeList)
	assert.Equal(t, []string{"Fire", "Water", "Grass"}, types.Types)
	assert.Equal(t, 3, types.Count)

	adv := mustCall(t, reg, "get_advantageous_type", map[string]any{"pokemon_type": "Fire"}).(demo.PokemonResult)
	assert.Equal(t, "Water", adv.AdvantageousType)
	adv = mustCall(t, reg, "get_advantageous_type", map[string]any{"pokemon_type": "Water"}).(demo.PokemonResult)
	assert.Equal(t, "Grass", adv.AdvantageousType)
	adv = mustCall(t, reg, "get_advantageous_type", map[string]any{"pokemon_type": "Grass"}).(demo.PokemonResult)
	assert.Equal(t, "Fire", adv.AdvantageousType)
	bad := mustCall(t, reg, "get_advantageous_type", map[string]any{"pokemon_type": "Rock"}).(demo.PokemonResult)
	assert.Equal(t, "error", bad.Status)
	assert.Contains(t, bad.Message, "Invalid Pokémon type: Rock")

	empty := mustCall(t, reg, "list_trainer_pokemon", map[string]any{"trainer_name": "Ash"}).(demo.PokemonResult)
	require.NotNil(t, empty.Count)
	assert.Equal(t, 0, *empty.Count)
	assert.Equal(t, "Trainer Ash has no Pokémon yet!", empty.Message)

	added := mustCall(t, reg, "have_pokemon", map[string]any{
		"pokemon_name": "Squirtle", "pokemon_type": "Water", "trainer_name": "Ash",
	}).(demo.PokemonResult)
	assert.Equal(t, "added", added.Status)
	assert.Equal(t, 1, added.TrainerCount)
	mustCall(t, reg, "have_pokemon", map[string]any{
		"pokemon_name": "Charmander", "pokemon_type": "Fire", "trainer_name": "Ash",
	})
	rejected := mustCall(t, reg, "have_pokemon", map[string]any{
		"pokemon_name": "Onix", "pokemon_type": "Rock", "trainer_name": "Ash",
	}).(demo.PokemonResult)
	assert.Equal(t, "error", rejected.Status)

	belt := mustCall(t, reg, "list_trainer_pokemon", map[string]any{"trainer_name": "Ash"}).(demo.PokemonResult)
	assert.Equal(t, []string{"Charmander (Fire)", "Squirtle (Water)"}, belt.List)
	assert.Equal(t, 2, *belt.Count)
	assert.Equal(t, "Ash's Pokémon: Charmander (Fire), Squirtle (Water)", belt.Message)
}

func TestPatients(t *testing.T) {
	reg := newRegistry(t, newDeps(t), demo.Patients)

	_, err := call(t, reg, "add_patient_age", map[string]any{"name": "Ann", "age": 12})
	assert.ErrorContains(t, err, `patient "Ann" not found`)
	_, err = call(t, reg, "is_eligible_for_study", map[string]any{"name": "Ann"})
	assert.Error(t, err)

	mustCall(t, reg, "create_patient", map[string]any{"name": "Ann"})
	_, err = call(t, reg, "is_eligible_for_study", map[string]any{"name": "Ann"})
	assert.ErrorContains(t, err, "no age recorded")

	p := mustCall(t, reg, "add_patient_gender", map[string]any{"name": "Ann", "gender": "female"}).(demo.Patient)
	assert.Equal(t, "female", p.Gender)
	p = mustCall(t, reg, "add_patient_age", map[string]any{"name": "Ann", "age": 12}).(demo.Patient)
	require.NotNil(t, p.Age)
	assert.Equal(t, "female", p.Gender)

	el := mustCall(t, reg, "is_eligible_for_study", map[string]any{"name": "Ann"}).(demo.Eligibility)
	assert.True(t, el.Eligible)

	mustCall(t, reg, "create_patient", map[string]any{"name": "Bob"})
	mustCall(t, reg, "add_patient_age", map[string]any{"name": "Bob", "age": 18})
	el = mustCall(t, reg, "is_eligible_for_study", map[string]any{"name": "Bob"}).(demo.Eligibility)
	assert.False(t, el.Eligible)

	receipt := mustCall(t, reg, "send_message_to_patient", map[string]any{"name": "Ann", "message": "hi"}).(demo.MessageReceipt)
	assert.Equal(t, "sent", receipt.Status)

	_, err = call(t, reg, "create_patient", map[string]any{})
	assert.Error(t, err)
}
