package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
)

// MultipartProductInput carries the parsed admin form. Set flags distinguish
// "field absent" from "field cleared" on updates.
type MultipartProductInput struct {
	Title       string
	TitleSet    bool
	Price       float64
	PriceSet    bool
	OldPrice    float64
	OldPriceSet bool
	Category    string
	CategorySet bool
	Gender      string
	GenderSet   bool

	Facets map[string]models.FacetList

	Image    *multipart.FileHeader
	ImageSet bool
}

func parseMultipartProductRequest(c *gin.Context) (MultipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		log.Println("[PRODUCT] [ERROR] multipart parse failed:", err)
		return MultipartProductInput{}, err
	}

	input := MultipartProductInput{Facets: map[string]models.FacetList{}}

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.ToLower(strings.TrimSpace(value))
		input.CategorySet = true
	}

	if value, ok := c.GetPostForm("gender"); ok {
		input.Gender = strings.ToLower(strings.TrimSpace(value))
		input.GenderSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("oldPrice"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartProductInput{}, err
		}
		input.OldPrice = parsed
		input.OldPriceSet = true
	}

	// facet form fields arrive comma-separated and are stored as arrays
	for _, fields := range models.FacetFields {
		for _, field := range fields {
			if value, ok := c.GetPostForm(field); ok {
				input.Facets[field] = models.ParseFacetList(value)
			}
		}
	}

	file, err := c.FormFile("image")
	if err == nil {
		input.Image = file
		input.ImageSet = true
	} else if !errors.Is(err, http.ErrMissingFile) &&
		!strings.Contains(err.Error(), "no such file") {
		return MultipartProductInput{}, err
	}

	return input, nil
}
