package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

func TestGetUserLedgerHandler_SeedsWhenMissing(t *testing.T) {
	e := echo.New()
	env := newTestEnv()
	h := NewProfileHandler(env.Profile, env.Auth)

	// Stranger owns nothing yet; first access seeds a ledger.
	c, rec := newRequestContext(e, http.MethodGet, "/user/ledger", "", env.Stranger)

	if err := h.GetUserLedger(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(rec.Body.Bytes(), &ledger); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if ledger.OwnerID != env.Stranger {
		t.Errorf("Expected seeded ledger owned by caller, got %s", ledger.OwnerID)
	}

	categories, _ := env.Categories.GetAllByLedger(ledger.ID)
	if len(categories) != len(domain.DefaultCategories) {
		t.Errorf("Expected %d starter categories, got %d", len(domain.DefaultCategories), len(categories))
	}
}

func TestUpdatePreferencesHandler_RoundTrip(t *testing.T) {
	e := echo.New()
	env := newTestEnv()
	h := NewProfileHandler(env.Profile, env.Auth)

	body := fmt.Sprintf(`{"darkMode": true, "currentLedgerId": %d}`, env.Ledger.ID)
	c, rec := newRequestContext(e, http.MethodPatch, "/user/preferences", body, env.Viewer)

	if err := h.UpdatePreferences(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !prefs.DarkMode {
		t.Error("Expected dark mode on")
	}
	if prefs.CurrentLedgerID == nil || *prefs.CurrentLedgerID != env.Ledger.ID {
		t.Errorf("Expected current ledger %d, got %v", env.Ledger.ID, prefs.CurrentLedgerID)
	}
}

func TestUpdatePreferencesHandler_PartialBodyKeepsCurrentLedger(t *testing.T) {
	e := echo.New()
	env := newTestEnv()
	h := NewProfileHandler(env.Profile, env.Auth)

	body := fmt.Sprintf(`{"currentLedgerId": %d}`, env.Ledger.ID)
	c, _ := newRequestContext(e, http.MethodPatch, "/user/preferences", body, env.Viewer)
	if err := h.UpdatePreferences(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A body that only toggles dark mode must not touch the ledger selection.
	c, rec := newRequestContext(e, http.MethodPatch, "/user/preferences", `{"darkMode": false}`, env.Viewer)
	if err := h.UpdatePreferences(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if prefs.CurrentLedgerID == nil || *prefs.CurrentLedgerID != env.Ledger.ID {
		t.Errorf("Expected current ledger %d to survive, got %v", env.Ledger.ID, prefs.CurrentLedgerID)
	}
}

func TestUpdatePreferencesHandler_InvisibleLedgerRejected(t *testing.T) {
	e := echo.New()
	env := newTestEnv()
	h := NewProfileHandler(env.Profile, env.Auth)

	body := fmt.Sprintf(`{"currentLedgerId": %d}`, env.Ledger.ID)
	c, rec := newRequestContext(e, http.MethodPatch, "/user/preferences", body, env.Stranger)

	if err := h.UpdatePreferences(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
