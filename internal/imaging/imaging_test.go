// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testImage encodes a solid-color PNG of the given width.
func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateVariants(t *testing.T) {
	src := testImage(t, 1200, 800)

	results, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}

	// 1200px source: thumb, sm, md fit; md is capped at 1024 and stops at lg.
	if len(results) != 4 {
		t.Fatalf("expected 4 variants, got %d", len(results))
	}

	widths := map[string]int{}
	for _, r := range results {
		widths[r.Name] = r.Width
		if r.ContentType != "image/jpeg" {
			t.Errorf("variant %s content type = %q", r.Name, r.ContentType)
		}
		if len(r.Data) == 0 {
			t.Errorf("variant %s has no data", r.Name)
		}
	}

	if widths["thumb"] != 320 || widths["sm"] != 640 || widths["md"] != 1024 {
		t.Errorf("unexpected widths: %v", widths)
	}
	// lg is capped at the original width rather than upscaled.
	if widths["lg"] != 1200 {
		t.Errorf("lg width = %d, want capped 1200", widths["lg"])
	}
}

func TestGenerateVariantsSmallSource(t *testing.T) {
	// Source narrower than the smallest breakpoint still yields one variant.
	src := testImage(t, 200, 150)

	results, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 variant for small source, got %d", len(results))
	}
	if results[0].Width != 200 {
		t.Errorf("width = %d, want 200 (no upscaling)", results[0].Width)
	}
}

func TestGenerateVariantsPreservesAspect(t *testing.T) {
	src := testImage(t, 1000, 500)

	results, err := GenerateVariants(src, []Variant{{Name: "half", Width: 500, Quality: 80}})
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(results))
	}
	if results[0].Width != 500 || results[0].Height != 250 {
		t.Errorf("got %dx%d, want 500x250", results[0].Width, results[0].Height)
	}
}

func TestGenerateVariantsRejectsGarbage(t *testing.T) {
	_, err := GenerateVariants([]byte("not an image"), nil)
	if err == nil {
		t.Error("expected error for non-image input")
	}
}
