package cache

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tunetype/tunetype/internal/models"
	"github.com/tunetype/tunetype/internal/shared"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestReportSlot(t *testing.T) {
	t.Run("absent reads as nil", func(t *testing.T) {
		store := newTestStore(t)
		report, err := store.Report()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report != nil {
			t.Errorf("expected nil report, got %+v", report)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		store := newTestStore(t)
		want := &models.Report{
			MBTI:      "INFP",
			Summary:   "summary",
			SpotifyID: "u1",
			ResultID:  "r1",
			Breakdown: models.Breakdown{
				TopGenres: []string{"indie pop"},
				Logic: map[string]models.TraitScore{
					"E vs I": {Direction: "I", Value: 42.5, Reason: "long tracks"},
				},
			},
		}

		if err := store.SetReport(want); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		got, err := store.Report()
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if got == nil {
			t.Fatal("expected a report")
		}
		if got.MBTI != want.MBTI || got.SpotifyID != want.SpotifyID || got.ResultID != want.ResultID {
			t.Errorf("report fields changed: %+v", got)
		}
		if got.Breakdown.Logic["E vs I"].Value != 42.5 {
			t.Errorf("breakdown logic lost: %+v", got.Breakdown.Logic)
		}
	})

	t.Run("second write replaces the slot", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetReport(&models.Report{MBTI: "INFP", Summary: "one", SpotifyID: "u1"}); err != nil {
			t.Fatal(err)
		}
		if err := store.SetReport(&models.Report{MBTI: "ESTJ", Summary: "two", SpotifyID: "u2"}); err != nil {
			t.Fatal(err)
		}

		got, err := store.Report()
		if err != nil {
			t.Fatal(err)
		}
		if got.MBTI != "ESTJ" || got.SpotifyID != "u2" {
			t.Errorf("expected replacement, got %+v", got)
		}
	})

	t.Run("clear then read", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetReport(&models.Report{MBTI: "INFP", Summary: "x", SpotifyID: "u1"}); err != nil {
			t.Fatal(err)
		}
		if err := store.ClearReport(); err != nil {
			t.Fatal(err)
		}
		if report, _ := store.Report(); report != nil {
			t.Error("expected cleared slot")
		}
	})

	t.Run("corrupt payload reads as absent", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.db.Exec(
			"INSERT OR REPLACE INTO report_cache (slot, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
			personalSlot, "{not json",
		)
		if err != nil {
			t.Fatal(err)
		}

		report, err := store.Report()
		if err != nil {
			t.Fatalf("corrupt entry should not error: %v", err)
		}
		if report != nil {
			t.Errorf("corrupt entry should read as absent, got %+v", report)
		}
	})
}

func TestTrackSlots(t *testing.T) {
	t.Run("lyrics keyed by track id", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetLyrics("t1", &models.Lyrics{Summary: "a song", Lyrics: "la la"}); err != nil {
			t.Fatal(err)
		}

		got, err := store.Lyrics("t1")
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.Lyrics != "la la" {
			t.Errorf("lyrics round trip failed: %+v", got)
		}

		if other, _ := store.Lyrics("t2"); other != nil {
			t.Error("different track id should read as absent")
		}
	})

	t.Run("lyrics and insight do not collide", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetLyrics("t1", &models.Lyrics{Lyrics: "la"}); err != nil {
			t.Fatal(err)
		}
		if err := store.SetInsight("t1", &models.ArtistInsight{ArtistName: "Test Artist", Summary: "formed in 2009"}); err != nil {
			t.Fatal(err)
		}

		lyrics, _ := store.Lyrics("t1")
		insight, _ := store.Insight("t1")
		if lyrics == nil || insight == nil {
			t.Fatal("expected both entries for the same track")
		}
		if lyrics.Lyrics != "la" || insight.Summary != "formed in 2009" {
			t.Error("entries crossed kinds")
		}
	})

	t.Run("clear removes one kind only", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetLyrics("t1", &models.Lyrics{Lyrics: "la"}); err != nil {
			t.Fatal(err)
		}
		if err := store.SetInsight("t1", &models.ArtistInsight{ArtistName: "Test Artist"}); err != nil {
			t.Fatal(err)
		}

		if err := store.ClearLyrics("t1"); err != nil {
			t.Fatal(err)
		}
		if lyrics, _ := store.Lyrics("t1"); lyrics != nil {
			t.Error("lyrics should be gone")
		}
		if insight, _ := store.Insight("t1"); insight == nil {
			t.Error("insight should survive a lyrics clear")
		}
	})
}

func TestMetaSlots(t *testing.T) {
	t.Run("credential round trip", func(t *testing.T) {
		store := newTestStore(t)
		if credential, _ := store.Credential(); credential != "" {
			t.Error("expected empty credential before write")
		}

		if err := store.SetCredential("bearer-token"); err != nil {
			t.Fatal(err)
		}
		if credential, _ := store.Credential(); credential != "bearer-token" {
			t.Errorf("credential round trip failed: %q", credential)
		}

		if err := store.ClearCredential(); err != nil {
			t.Fatal(err)
		}
		if credential, _ := store.Credential(); credential != "" {
			t.Error("expected cleared credential")
		}
	})

	t.Run("location replaces in place", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.ReplaceLocation("/result/a"); err != nil {
			t.Fatal(err)
		}
		if err := store.ReplaceLocation("/result/b"); err != nil {
			t.Fatal(err)
		}

		location, err := store.Location()
		if err != nil {
			t.Fatal(err)
		}
		if location != "/result/b" {
			t.Errorf("expected latest location, got %q", location)
		}

		var count int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM meta WHERE key = ?", metaLocation).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("expected a single location row, got %d", count)
		}
	})
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetReport(&models.Report{MBTI: "INFP", Summary: "x", SpotifyID: "u1"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetLyrics("t1", &models.Lyrics{Lyrics: "la"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetInsight("t1", &models.ArtistInsight{ArtistName: "Test Artist"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetCredential("token"); err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceLocation("/result/r1"); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if report, _ := store.Report(); report != nil {
		t.Error("report survived clear")
	}
	if lyrics, _ := store.Lyrics("t1"); lyrics != nil {
		t.Error("lyrics survived clear")
	}
	if insight, _ := store.Insight("t1"); insight != nil {
		t.Error("insight survived clear")
	}
	if credential, _ := store.Credential(); credential != "" {
		t.Error("credential survived clear")
	}
	if location, _ := store.Location(); location != "" {
		t.Error("location survived clear")
	}
}
