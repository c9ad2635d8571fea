package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestDownloader(baseURL, dir string) *Downloader {
	cfg := DefaultDownloaderConfig()
	cfg.BaseURL = baseURL
	cfg.Dir = dir
	cfg.RequestsPerSec = 1000
	cfg.MaxRetries = 0
	cfg.Timeout = 5 * time.Second
	return NewDownloader(cfg, nil)
}

func TestFetchYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/atp_matches_2020.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("header\nrow\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := newTestDownloader(srv.URL, dir)

	if err := d.FetchYear(context.Background(), 2020); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "atp_matches_2020.csv"))
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if string(data) != "header\nrow\n" {
		t.Fatalf("file content %q", data)
	}

	if err := d.FetchYear(context.Background(), 2021); err == nil {
		t.Fatalf("expected error for missing upstream year")
	}
}

func TestFetchYearSkipsExisting(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("fresh\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "atp_matches_2020.csv")
	if err := os.WriteFile(existing, []byte("kept\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := newTestDownloader(srv.URL, dir)
	if err := d.FetchYear(context.Background(), 2020); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no requests for an existing file, got %d", requests)
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "kept\n" {
		t.Fatalf("existing file overwritten: %q", data)
	}
}

func TestFetchRangeContinuesPastMissingYears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/atp_matches_2020.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("data\n"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "data")
	d := newTestDownloader(srv.URL, dir)

	if err := d.FetchRange(context.Background(), 2019, 2021); err != nil {
		t.Fatalf("fetch range failed: %v", err)
	}
	for _, name := range []string{"atp_matches_2019.csv", "atp_matches_2021.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s downloaded: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "atp_matches_2020.csv")); !os.IsNotExist(err) {
		t.Fatalf("missing upstream year should not produce a file")
	}
}
