package main

import "testing"

func TestRunOnce_SameSeedSameFingerprint(t *testing.T) {
	var results []Result
	for i := 0; i < 2; i++ {
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		results = append(results, runOnce(cfg, i, 7, 60, 120))
	}

	if !deterministic(results) {
		t.Errorf("expected identical fingerprints, got %s and %s", results[0].Fingerprint, results[1].Fingerprint)
	}
	for _, r := range results {
		if r.Ticks != 120 {
			t.Errorf("expected 120 ticks, got %d", r.Ticks)
		}
		if r.FinalCats != 60 {
			t.Errorf("expected 60 cats, got %d", r.FinalCats)
		}
	}
}

func TestRunOnce_DifferentSeedsDiverge(t *testing.T) {
	a, _ := loadConfig("")
	b, _ := loadConfig("")
	ra := runOnce(a, 0, 1, 40, 60)
	rb := runOnce(b, 1, 2, 40, 60)
	if deterministic([]Result{ra, rb}) {
		t.Error("expected different seeds to produce different fingerprints")
	}
}
