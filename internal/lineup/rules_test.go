package lineup

import (
	"testing"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

func TestRuleBook_For(t *testing.T) {
	rules := []models.RosterRules{
		{Season: 2021, Slots: map[string]int{"QB": 1, "RB": 2}},
		{Season: 2018, Slots: map[string]int{"QB": 2}},
		{Season: 2023, Slots: map[string]int{"QB": 1, "RB": 3}},
	}

	tests := []struct {
		name   string
		book   RuleBook
		season int
		wantQB int
		wantRB int
	}{
		{"exact season", NewRuleBook(rules), 2021, 1, 2},
		{"nearest earlier season", NewRuleBook(rules), 2022, 1, 2},
		{"later than every season", NewRuleBook(rules), 2030, 1, 3},
		{"between unsorted entries", NewRuleBook(rules), 2019, 2, 0},
		{"earlier than every season uses hardcoded default", NewRuleBook(rules), 2010, 1, 2},
		{"nothing loaded", NewRuleBook(nil), 2023, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.book.For(tt.season)
			if got.Slots["QB"] != tt.wantQB {
				t.Errorf("QB slots = %d, want %d", got.Slots["QB"], tt.wantQB)
			}
			if got.Slots["RB"] != tt.wantRB {
				t.Errorf("RB slots = %d, want %d", got.Slots["RB"], tt.wantRB)
			}
		})
	}
}

func TestRuleBook_TableDefaultBeforeHardcoded(t *testing.T) {
	book := NewRuleBook([]models.RosterRules{
		{Season: 2020, Slots: map[string]int{"QB": 1}},
		{IsDefault: true, Slots: map[string]int{"QB": 2, "K": 0}},
	})

	if got := book.For(2015).Slots["QB"]; got != 2 {
		t.Errorf("QB slots for 2015 = %d, want 2 from table default", got)
	}
	if got := book.For(2024).Slots["QB"]; got != 1 {
		t.Errorf("QB slots for 2024 = %d, want 1 from 2020", got)
	}
	if !book.Loaded() {
		t.Error("Loaded() = false, want true")
	}
}

func TestRuleBook_ReturnsCopies(t *testing.T) {
	book := NewRuleBook(nil)

	got := book.For(2024)
	got.Slots["QB"] = 9

	if DefaultRules.Slots["QB"] != 1 {
		t.Errorf("DefaultRules mutated through returned rules: QB = %d", DefaultRules.Slots["QB"])
	}
}
