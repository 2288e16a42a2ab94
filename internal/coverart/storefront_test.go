package coverart_test

import (
	"context"
	"errors"
	"testing"

	"coverfinder/internal/coverart"
	"coverfinder/internal/services"
)

func TestStorefrontResolveManyBuildsResultsInSearchOrder(t *testing.T) {
	server, _ := newStorefrontServer(t)
	resolver := newStorefrontResolver(server, coverart.StorefrontOptions{})

	results, err := resolver.ResolveMany(context.Background(), "Hades", 0)
	if err != nil {
		t.Fatalf("ResolveMany: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}

	hades := results[0]
	if hades.Key != "steam_1145360" || hades.Source != coverart.SourceStorefront {
		t.Fatalf("unexpected first result: %+v", hades)
	}
	if hades.PreviewURL != "https://shared.test/1145360/header.jpg" {
		t.Fatalf("unexpected preview: %q", hades.PreviewURL)
	}
	if want := server.URL + "/cdn/1145360/library_600x900.jpg"; hades.SaveURL != want {
		t.Fatalf("expected library artwork %q, got %q", want, hades.SaveURL)
	}
	if hades.Store == nil || hades.Store.AppID != 1145360 || hades.Store.ReleaseDate != "17 Sep, 2020" {
		t.Fatalf("unexpected metadata: %+v", hades.Store)
	}
	if len(hades.Store.Developers) != 1 || hades.Store.Publishers == nil {
		t.Fatalf("unexpected people lists: %+v", hades.Store)
	}

	sequel := results[1]
	if sequel.PreviewURL != "https://shared.test/1145350/capsule.jpg" {
		t.Fatalf("expected capsule fallback for preview, got %q", sequel.PreviewURL)
	}
	if want := server.URL + "/cdn/1145350/header.jpg"; sequel.SaveURL != want {
		t.Fatalf("expected header template for save, got %q", sequel.SaveURL)
	}
}

func TestStorefrontResolveOneUsesSingleLimit(t *testing.T) {
	server, counter := newStorefrontServer(t)
	resolver := newStorefrontResolver(server, coverart.StorefrontOptions{})

	got, err := resolver.ResolveOne(context.Background(), "Hades")
	if err != nil {
		t.Fatalf("ResolveOne: %v", err)
	}
	if want := server.URL + "/cdn/1145360/library_600x900.jpg"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if hits := counter.get("/api/appdetails"); hits != 1 {
		t.Fatalf("expected only the first hit to be inspected, got %d detail requests", hits)
	}
}

func TestStorefrontSkipProbe(t *testing.T) {
	server, counter := newStorefrontServer(t)
	resolver := newStorefrontResolver(server, coverart.StorefrontOptions{SkipProbe: true})

	got, err := resolver.ResolveOne(context.Background(), "Hades")
	if err != nil {
		t.Fatalf("ResolveOne: %v", err)
	}
	if got != "https://shared.test/1145360/header.jpg" {
		t.Fatalf("expected header image without probe, got %q", got)
	}
	if hits := counter.get("/cdn/1145360/library_600x900.jpg"); hits != 0 {
		t.Fatalf("expected no probe requests, got %d", hits)
	}
}

func TestStorefrontOutageIsEmpty(t *testing.T) {
	server, _ := newStorefrontServer(t)
	resolver := newStorefrontResolver(server, coverart.StorefrontOptions{})
	server.Close()

	results, err := resolver.ResolveMany(context.Background(), "Hades", 5)
	if err != nil || len(results) != 0 {
		t.Fatalf("expected empty result on outage, got %+v, %v", results, err)
	}
}

func TestStorefrontCancellation(t *testing.T) {
	server, _ := newStorefrontServer(t)
	resolver := newStorefrontResolver(server, coverart.StorefrontOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := resolver.ResolveMany(ctx, "Hades", 5); !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if _, err := resolver.ResolveOne(ctx, "Hades"); !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled from ResolveOne, got %v", err)
	}
}
