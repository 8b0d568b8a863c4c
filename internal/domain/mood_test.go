package domain

import (
	"testing"
)

func TestNewMoodEntry(t *testing.T) {
	tests := []struct {
		name    string
		mood    MoodLevel
		energy  int
		stress  int
		wantErr error
	}{
		{name: "valid entry", mood: MoodGood, energy: 4, stress: 2},
		{name: "boundary values", mood: MoodVeryBad, energy: 1, stress: 5},
		{name: "invalid level", mood: MoodLevel("ecstatic"), energy: 3, stress: 3, wantErr: ErrInvalidMoodLevel},
		{name: "energy too low", mood: MoodNeutral, energy: 0, stress: 3, wantErr: ErrMoodScaleOutOfRange},
		{name: "energy too high", mood: MoodNeutral, energy: 6, stress: 3, wantErr: ErrMoodScaleOutOfRange},
		{name: "stress too low", mood: MoodNeutral, energy: 3, stress: 0, wantErr: ErrMoodScaleOutOfRange},
		{name: "stress too high", mood: MoodNeutral, energy: 3, stress: 6, wantErr: ErrMoodScaleOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewMoodEntry("user-1", tt.mood, tt.energy, tt.stress, "")
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("NewMoodEntry() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMoodEntry() unexpected error = %v", err)
			}
			if entry.ID == "" {
				t.Error("NewMoodEntry() entry has empty ID")
			}
			if entry.Mood != tt.mood {
				t.Errorf("NewMoodEntry() mood = %v, want %v", entry.Mood, tt.mood)
			}
		})
	}
}

func TestMoodLevelScore(t *testing.T) {
	tests := []struct {
		level MoodLevel
		want  int
	}{
		{MoodVeryBad, 1},
		{MoodBad, 2},
		{MoodNeutral, 3},
		{MoodGood, 4},
		{MoodVeryGood, 5},
		{MoodLevel("unknown"), NeutralMoodScore},
	}

	for _, tt := range tests {
		if got := tt.level.Score(); got != tt.want {
			t.Errorf("Score(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestMoodEntryLinkSession(t *testing.T) {
	entry, err := NewMoodEntry("user-1", MoodNeutral, 3, 3, "before work")
	if err != nil {
		t.Fatalf("NewMoodEntry() error = %v", err)
	}

	entry.LinkSession("session-1", MoodPhaseBefore)
	if entry.SessionID == nil || *entry.SessionID != "session-1" {
		t.Errorf("LinkSession() sessionID = %v, want session-1", entry.SessionID)
	}
	if entry.Phase != MoodPhaseBefore {
		t.Errorf("LinkSession() phase = %v, want %v", entry.Phase, MoodPhaseBefore)
	}
}
