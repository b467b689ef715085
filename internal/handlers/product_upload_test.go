package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMultipartTestContext(t *testing.T, build func(*multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequest_SplitsFacetValues(t *testing.T) {
	c := newMultipartTestContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("title", "Linen Shirt")
		_ = w.WriteField("price", "249.90")
		_ = w.WriteField("category", "Summer")
		_ = w.WriteField("summerType", "shirt, casual , ")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.TitleSet || parsed.Title != "Linen Shirt" {
		t.Fatalf("expected title to be set, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 249.90 {
		t.Fatalf("expected price 249.90, got %+v", parsed)
	}
	if parsed.Category != "summer" {
		t.Fatalf("expected lowercased category, got %q", parsed.Category)
	}

	facet := parsed.Facets["summerType"]
	if len(facet) != 2 || facet[0] != "shirt" || facet[1] != "casual" {
		t.Fatalf("expected facet [shirt casual], got %v", facet)
	}
}

func TestParseMultipartProductRequest_AbsentFieldsStayUnset(t *testing.T) {
	c := newMultipartTestContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("title", "Only Title")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if parsed.PriceSet || parsed.CategorySet || parsed.GenderSet || parsed.ImageSet {
		t.Fatalf("expected absent fields to stay unset, got %+v", parsed)
	}
	if len(parsed.Facets) != 0 {
		t.Fatalf("expected no facets, got %v", parsed.Facets)
	}
}

func TestParseMultipartProductRequest_EmptyOldPriceIgnored(t *testing.T) {
	c := newMultipartTestContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("oldPrice", "  ")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if parsed.OldPriceSet {
		t.Fatal("expected blank oldPrice to stay unset")
	}
}

func TestParseMultipartProductRequest_BadPriceFails(t *testing.T) {
	c := newMultipartTestContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("price", "abc")
	})

	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}

func TestParseMultipartProductRequest_ReadsImageFile(t *testing.T) {
	c := newMultipartTestContext(t, func(w *multipart.Writer) {
		part, err := w.CreateFormFile("image", "shirt.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		_, _ = part.Write([]byte("fake-jpg-bytes"))
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.ImageSet || parsed.Image == nil {
		t.Fatal("expected image to be set")
	}
	if parsed.Image.Filename != "shirt.jpg" {
		t.Fatalf("expected filename shirt.jpg, got %q", parsed.Image.Filename)
	}
}
