package service_test

import (
	"errors"
	"testing"

	"github.com/WagnerRodrigues181/nutri-lens/internal/model"
	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

func TestGoalVersioningByEffectiveDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetGoals(db, service.SetGoalsInput{
		Goals:         model.DailyGoals{Calories: 2000, Protein: 150, Carbs: 220, Fat: 70, Water: 2.5},
		EffectiveDate: "2026-01-01",
	}); err != nil {
		t.Fatalf("set first goals: %v", err)
	}
	if err := service.SetGoals(db, service.SetGoalsInput{
		Goals:         model.DailyGoals{Calories: 1800, Protein: 160, Carbs: 180, Fat: 60, Water: 3},
		EffectiveDate: "2026-02-01",
	}); err != nil {
		t.Fatalf("set second goals: %v", err)
	}

	january, err := service.CurrentGoals(db, "2026-01-15")
	if err != nil {
		t.Fatalf("current january goals: %v", err)
	}
	if january.Calories != 2000 || january.Water != 2.5 {
		t.Fatalf("expected january goals, got %+v", january)
	}
	february, err := service.CurrentGoals(db, "2026-02-10")
	if err != nil {
		t.Fatalf("current february goals: %v", err)
	}
	if february.Calories != 1800 || february.Water != 3 {
		t.Fatalf("expected february goals, got %+v", february)
	}

	history, err := service.GoalHistory(db)
	if err != nil {
		t.Fatalf("goal history: %v", err)
	}
	if len(history) != 2 || history[0].EffectiveDate != "2026-02-01" {
		t.Fatalf("unexpected goal history: %+v", history)
	}
}

func TestCurrentGoalsFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	goals, err := service.CurrentGoals(db, "2026-01-15")
	if err != nil {
		t.Fatalf("current goals: %v", err)
	}
	if goals != model.DefaultGoals() {
		t.Fatalf("expected default goals, got %+v", goals)
	}

	if err := service.SetGoals(db, service.SetGoalsInput{
		Goals:         model.DailyGoals{Calories: 2200, Protein: 140, Carbs: 250, Fat: 70, Water: 2},
		EffectiveDate: "2026-02-01",
	}); err != nil {
		t.Fatalf("set goals: %v", err)
	}
	before, err := service.CurrentGoals(db, "2026-01-31")
	if err != nil {
		t.Fatalf("current goals before first version: %v", err)
	}
	if before != model.DefaultGoals() {
		t.Fatalf("expected defaults before the first version, got %+v", before)
	}
}

func TestSetGoalsRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	err := service.SetGoals(db, service.SetGoalsInput{
		Goals:         model.DailyGoals{Calories: 400, Protein: 150, Carbs: 200, Fat: 65, Water: 2},
		EffectiveDate: "2026-01-01",
	})
	if !errors.Is(err, service.ErrOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	var verr *service.ValidationError
	if !errors.As(err, &verr) || verr.Field != "goals.calories" {
		t.Fatalf("expected goals.calories field, got %v", err)
	}

	err = service.SetGoals(db, service.SetGoalsInput{Goals: model.DefaultGoals(), EffectiveDate: "tomorrow"})
	if !errors.Is(err, service.ErrInvalidShape) {
		t.Fatalf("expected invalid shape error, got %v", err)
	}
}

func TestSuggestGoalsFromProfile(t *testing.T) {
	t.Parallel()

	goals, err := service.SuggestGoals(model.UserProfile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           30,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalLoseWeight,
	})
	if err != nil {
		t.Fatalf("suggest goals: %v", err)
	}
	if goals.Calories != 2259 || goals.Water != model.DefaultGoals().Water {
		t.Fatalf("unexpected suggestion: %+v", goals)
	}

	_, err = service.SuggestGoals(model.UserProfile{WeightKg: 80, HeightCm: 180, Age: 30, Gender: model.GenderMale, ActivityLevel: "couch", Goal: model.GoalMaintain})
	if !errors.Is(err, service.ErrInvalidShape) {
		t.Fatalf("expected invalid shape for activity level, got %v", err)
	}
	_, err = service.SuggestGoals(model.UserProfile{WeightKg: 500, HeightCm: 180, Age: 30, Gender: model.GenderMale, ActivityLevel: model.ActivityLight, Goal: model.GoalMaintain})
	if !errors.Is(err, service.ErrOutOfRange) {
		t.Fatalf("expected out of range weight, got %v", err)
	}
}

func TestSuggestGoalsRejectsUnsaveableResults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		profile model.UserProfile
		field   string
	}{
		{
			name:    "negative calories",
			profile: model.UserProfile{WeightKg: 30, HeightCm: 120, Age: 100, Gender: model.GenderFemale, ActivityLevel: model.ActivitySedentary, Goal: model.GoalLoseWeight},
			field:   "goals.calories",
		},
		{
			name:    "fat below minimum",
			profile: model.UserProfile{WeightKg: 45, HeightCm: 150, Age: 70, Gender: model.GenderFemale, ActivityLevel: model.ActivitySedentary, Goal: model.GoalLoseWeight},
			field:   "goals.fat",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			goals, err := service.SuggestGoals(tc.profile)
			if !errors.Is(err, service.ErrOutOfRange) {
				t.Fatalf("expected out of range, got %+v (%v)", goals, err)
			}
			var verr *service.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected %s to be rejected, got %v", tc.field, err)
			}
			if goals != (model.DailyGoals{}) {
				t.Fatalf("expected no goals on error, got %+v", goals)
			}
		})
	}
}
