package kv_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"isaarte/internal/kv"
)

func sqlStore(t *testing.T) *kv.SQLStore {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE kv(key TEXT PRIMARY KEY, value BLOB, updated_at TEXT)`); err != nil {
		t.Fatal(err)
	}
	return kv.NewSQLStore(db)
}

func stores(t *testing.T) map[string]kv.Store {
	return map[string]kv.Store{
		"sql": sqlStore(t),
		"mem": kv.NewMemStore(),
	}
}

func TestSetGetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("missing"); err != kv.ErrNotFound {
				t.Fatalf("want ErrNotFound, got %v", err)
			}
			if err := s.Set("k", []byte(`"v1"`)); err != nil {
				t.Fatal(err)
			}
			b, err := s.Get("k")
			if err != nil || string(b) != `"v1"` {
				t.Fatalf("get: %q %v", b, err)
			}

			// overwrite wins
			if err := s.Set("k", []byte(`"v2"`)); err != nil {
				t.Fatal(err)
			}
			b, _ = s.Get("k")
			if string(b) != `"v2"` {
				t.Fatalf("overwrite lost: %q", b)
			}

			if err := s.Delete("k"); err != nil {
				t.Fatal(err)
			}
			if _, err := s.Get("k"); err != kv.ErrNotFound {
				t.Fatalf("want ErrNotFound after delete, got %v", err)
			}
			// deleting a missing key is not an error
			if err := s.Delete("k"); err != nil {
				t.Fatalf("delete missing: %v", err)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	s := kv.NewMemStore()
	type payload struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	if err := kv.SetJSON(s, "p", payload{Name: "vaso", N: 3}); err != nil {
		t.Fatal(err)
	}
	var got payload
	if err := kv.GetJSON(s, "p", &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "vaso" || got.N != 3 {
		t.Fatalf("round trip: %+v", got)
	}
	if err := kv.GetJSON(s, "missing", &got); err != kv.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
