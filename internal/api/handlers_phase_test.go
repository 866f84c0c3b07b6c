package api

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/metrics"
	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

func TestPhaseWithoutCycleIsNotFound(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	status, raw := doRequest(t, app, fiber.MethodGet, "/api/phase", nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", status, string(raw))
	}
}

func TestPhaseDescribesCurrentCycle(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	quickLog(t, app, map[string]any{"start_date": "2026-03-01", "end_date": "2026-03-05", "cycle_length": 28})

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/phase", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, string(raw))
	}
	descriptor := decodeJSON[services.PhaseDescriptor](t, raw)
	if descriptor.DayNumber != 10 || descriptor.TotalDays != 28 {
		t.Fatalf("unexpected day numbers %#v", descriptor)
	}
	if descriptor.Phase != models.PhaseFertile || descriptor.Name != "Masa Subur" {
		t.Fatalf("unexpected phase %#v", descriptor)
	}
	if descriptor.DaysToOvulation == nil || *descriptor.DaysToOvulation != 5 {
		t.Fatalf("expected 5 days to ovulation, got %v", descriptor.DaysToOvulation)
	}
	if descriptor.DaysToNextPeriod == nil || *descriptor.DaysToNextPeriod != 19 {
		t.Fatalf("expected 19 days to next period, got %v", descriptor.DaysToNextPeriod)
	}
}

func TestPhaseHonoursTodayQuery(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	quickLog(t, app, map[string]any{"start_date": "2026-03-01", "cycle_length": 28})

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/phase?today=2026-03-01", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, string(raw))
	}
	if descriptor := decodeJSON[services.PhaseDescriptor](t, raw); descriptor.DayNumber != 1 {
		t.Fatalf("expected day 1, got %d", descriptor.DayNumber)
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/phase?today=2026-02-27", nil)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 before the cycle start, got %d", status)
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/phase?today=tomorrow", nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed today, got %d", status)
	}
}

func TestPhaseUnknownTagFallsBackAndIsCounted(t *testing.T) {
	t.Parallel()

	registry := metrics.New()
	app, _, database := newTestAppWithOptions(t, HandlerOptions{Metrics: registry})
	cycle := quickLog(t, app, map[string]any{"start_date": "2026-03-01", "cycle_length": 28})

	if err := database.Model(&models.Cycle{}).Where("id = ?", cycle.ID).
		Update("phase", "mystery").Error; err != nil {
		t.Fatalf("corrupt phase tag: %v", err)
	}

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/phase", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, string(raw))
	}
	if descriptor := decodeJSON[services.PhaseDescriptor](t, raw); descriptor.Phase != models.PhaseNormal {
		t.Fatalf("expected normal fallback, got %q", descriptor.Phase)
	}

	_, scraped := doRequest(t, app, fiber.MethodGet, "/metrics", nil)
	if !strings.Contains(string(scraped), "pregcare_phase_fallback_total 1") {
		t.Fatalf("expected fallback counter, got:\n%s", string(scraped))
	}
	if strings.Contains(string(scraped), "mystery") {
		t.Fatalf("stored tag leaked into metric labels:\n%s", string(scraped))
	}
}
