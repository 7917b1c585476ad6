package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ats/internal/domain/application"
	"ats/internal/usecase"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func init() {
	color.NoColor = true
}

func TestRunAuto_KeepsGoingAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	pass := func(context.Context) (usecase.BotPassResult, error) {
		calls++
		switch calls {
		case 1:
			return usecase.BotPassResult{}, usecase.ErrBotPassInProgress
		case 2:
			return usecase.BotPassResult{}, errors.New("db down")
		default:
			cancel()
			return usecase.BotPassResult{ProcessedCount: 1, Results: []usecase.BotTransitionResult{{
				ApplicationID: uuid.New(),
				ApplicantName: "Ayu",
				JobRole:       "Backend Engineer",
				OldStatus:     application.StatusInterview,
				NewStatus:     application.StatusOffer,
			}}}, nil
		}
	}

	var out bytes.Buffer
	if err := runAuto(ctx, time.Millisecond, &out, pass); err != nil {
		t.Fatalf("runAuto: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d", calls)
	}
	got := out.String()
	for _, want := range []string{"previous pass still running", "pass failed: db down", "Ayu (Backend Engineer): Interview -> Offer"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunAuto_RejectsBadInterval(t *testing.T) {
	err := runAuto(context.Background(), 0, &bytes.Buffer{}, func(context.Context) (usecase.BotPassResult, error) {
		t.Fatal("pass must not run")
		return usecase.BotPassResult{}, nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPrintPassResult_Empty(t *testing.T) {
	var out bytes.Buffer
	printPassResult(&out, usecase.BotPassResult{})
	if !strings.Contains(out.String(), "no technical applications") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestCommandTree(t *testing.T) {
	bot := BotCmd()
	auto, _, err := bot.Find([]string{"auto"})
	if err != nil || auto.Flags().Lookup("interval") == nil {
		t.Fatalf("bot auto missing interval flag: %v", err)
	}
	exp, _, err := BackfillCmd().Find([]string{"experience"})
	if err != nil || exp.Flags().Lookup("dry-run") == nil {
		t.Fatalf("backfill experience missing dry-run flag: %v", err)
	}
	if botActor().Role != application.RoleBot {
		t.Fatalf("cli actor must be the bot role")
	}
}
