package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"wellness-eligibility/internal/common/config"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/storage"
	"wellness-eligibility/internal/form"
	"wellness-eligibility/internal/models"
	"wellness-eligibility/internal/persistence"
	"wellness-eligibility/internal/presenter"
	"wellness-eligibility/internal/submission"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPrompt(t *testing.T, input []string) (*prompter, *persistence.Store, *form.State, *bytes.Buffer) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	log := logger.NewTestLogger(t)
	kv := storage.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	store := persistence.NewStore(kv, "device-1", log)
	state := form.NewState(store, nil, log)
	coord := submission.NewCoordinator(nil, nil, nil, nil, nil, log)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	return newPrompter(in, &out, state, coord, presenter.SkinFromConfig(config.SkinConfig{}), log), store, state, &out
}

func TestPrompter_FullRunShowsLocalResult(t *testing.T) {
	p, store, _, out := setupPrompt(t, []string{
		// company
		"Acme Pty Ltd", "2", "retail",
		// locations
		"2000", "Sydney", "NSW", "60", "1", "3000", "Melbourne", "VIC", "40",
		// workforce
		"150", "1", "4",
		// benefits
		"1,2,3,4", "no", "",
		// contact
		"Jane", "Citizen", "People Lead", "jane@acme.com", "0400 000 000",
		// start another?
		"n",
	})

	require.NoError(t, p.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[#----] Step 1 of 5: Company")
	assert.Contains(t, text, "[#####] Step 5 of 5: Contact")
	assert.Contains(t, text, "Eligibility score: 135")
	assert.Contains(t, text, "[ELIGIBLE]")

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved, "finished session is cleared")
}

func TestPrompter_RestoreThenQuit(t *testing.T) {
	p, store, state, out := setupPrompt(t, []string{"y", ":quit"})

	a := models.DefaultAnswers()
	a.CompanyName = "Saved Co"
	require.NoError(t, store.Save(context.Background(), a, models.StepWorkforce))

	require.NoError(t, p.Run(context.Background()))

	assert.Contains(t, out.String(), "saved progress for Saved Co (step 3: Workforce)")
	assert.Contains(t, out.String(), "progress has been saved")
	assert.Equal(t, models.StepWorkforce, state.Step())
	assert.Equal(t, "Saved Co", state.Answers().CompanyName)
}

func TestPrompter_BackReturnsToPreviousStep(t *testing.T) {
	p, store, state, out := setupPrompt(t, []string{
		"Acme", "1", "1",
		":back",
	})

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, models.StepCompany, state.Step())
	assert.Contains(t, out.String(), "[##---] Step 2 of 5: Locations")
	assert.Contains(t, out.String(), "Company name [Acme]:")

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, models.StepCompany, saved.Step)
}

func TestPrompter_InvalidAnswerIsAskedAgain(t *testing.T) {
	p, _, state, out := setupPrompt(t, []string{"Acme", "99", "2"})

	require.NoError(t, p.Run(context.Background()))

	assert.Contains(t, out.String(), "choose 1-")
	assert.Equal(t, models.BusinessPublicCompany, state.Answers().BusinessType)
}

func TestPrompter_ReaderStopsWhenRunReturns(t *testing.T) {
	p, _, _, _ := setupPrompt(t, []string{"Acme", ":quit", "unread", "lines"})

	require.NoError(t, p.Run(context.Background()))

	select {
	case <-p.reader:
	case <-time.After(2 * time.Second):
		t.Fatal("input goroutine still blocked after Run returned")
	}
}

func TestPrompter_ListsFieldProblems(t *testing.T) {
	p, store, state, out := setupPrompt(t, []string{"y", "", "", "", "", ""})

	a := models.DefaultAnswers()
	a.CompanyName = "Acme"
	a.FirstName = "Jane"
	a.LastName = "Citizen"
	a.JobTitle = "People Lead"
	a.PhoneNumber = "0400 000 000"
	a.WorkEmail = "jane@gmail.com"
	require.NoError(t, store.Save(context.Background(), a, models.StepContact))

	require.NoError(t, p.Run(context.Background()))

	assert.Contains(t, out.String(), "Work email: Please use your work email rather than a personal address")
	assert.NotContains(t, out.String(), "Company name:", "only the current step's questions are listed")
	assert.Equal(t, models.StepContact, state.Step())
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name    string
		q       question
		line    string
		want    interface{}
		wantErr bool
	}{
		{"text", question{kind: kindText}, "Acme", "Acme", false},
		{"text clear", question{kind: kindText}, "-", nil, false},
		{"count", question{kind: kindCount}, "42", 42, false},
		{"count not a number", question{kind: kindCount}, "lots", nil, true},
		{"optional count clear", question{kind: kindOptionalCount}, "-", nil, false},
		{"choice by number", question{kind: kindChoice, options: []string{"a", "b"}}, "2", "b", false},
		{"choice by value", question{kind: kindChoice, options: []string{"full-time"}}, "FULL-TIME", "full-time", false},
		{"choice out of range", question{kind: kindChoice, options: []string{"a"}}, "3", nil, true},
		{"scale label", question{kind: kindScale}, "good", 3, false},
		{"scale number", question{kind: kindScale}, "0", 0, false},
		{"scale out of range", question{kind: kindScale}, "9", nil, true},
		{"tags mixed", question{kind: kindTags, options: []string{"x", "y"}}, "2, custom", []string{"y", "custom"}, false},
		{"tags clear", question{kind: kindTags}, "-", []string{}, false},
		{"yes", question{kind: kindYesNo}, "Y", "yes", false},
		{"maybe", question{kind: kindYesNo}, "maybe", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswer(tt.q, tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
