package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildResult(t *testing.T) {
	start := epoch
	tests := []struct {
		name      string
		snap      Snapshot
		wantScore int
		wantTime  int
	}{
		{
			name:     "flashcard uses per-card budget",
			snap:     Snapshot{Config: testConfig(ModeFlashcard), Items: flashcards(20), Score: 3},
			wantTime: 200,
		},
		{
			name:     "typing uses session countdown",
			snap:     Snapshot{Config: testConfig(ModeTyping), Items: questions(10)},
			wantTime: 300,
		},
		{
			name:      "multiple choice measures wall clock",
			snap:      Snapshot{Config: testConfig(ModeMultipleChoice), Items: questions(20), Score: 7, StartedAt: start, EndedAt: start.Add(61500 * time.Millisecond)},
			wantScore: 7,
			wantTime:  61,
		},
		{
			name:      "multiple choice without start time",
			snap:      Snapshot{Config: testConfig(ModeMultipleChoice), Items: questions(20), Score: 1},
			wantScore: 1,
			wantTime:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.snap.SessionID = "s-1"
			r := BuildResult(tt.snap)
			assert.Equal(t, "s-1", r.SessionID)
			assert.Equal(t, tt.wantScore, r.Score)
			assert.Equal(t, tt.wantTime, r.TimeSpent)
			assert.Equal(t, len(tt.snap.Items), r.TotalQuestions)
			assert.Equal(t, tt.snap.Config.Mode, r.Mode)
			assert.Equal(t, DifficultyMedium, r.Difficulty)
			assert.Equal(t, "NCLEX-RN", r.ExamType)
		})
	}
}

func TestResultAccuracy(t *testing.T) {
	assert.Equal(t, 0.25, Result{Score: 5, TotalQuestions: 20}.Accuracy())
	assert.Equal(t, 0.0, Result{}.Accuracy())
}
