package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/storage"
)

/* =========================
   LIST
========================= */

// GetProducts lists one category. The category arrives as a query parameter or
// as a path segment; both shapes are served by the same handler.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		category := c.Query("category")
		if category == "" {
			category = c.Param("category")
		}

		collection, ok := collectionForCategory(category)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid or missing category")
			return
		}

		filter := productFilter(collection, c.Request.URL.Query())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(collection).Find(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch products")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch products")
			return
		}

		log.Printf("[%s] category=%s returning %d products", route, collection, len(products))
		c.JSON(http.StatusOK, products)
	}
}

/* =========================
   FAN-OUT LOOKUP
========================= */

// findProductAnyCategory checks the four collections in turn. The client sends
// no category hint on id paths, so this stays an O(4) sequential scan.
func findProductAnyCategory(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Product, string, bool, error) {
	for _, collection := range models.ProductCategories {
		var raw bson.M
		err := db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return models.Product{}, "", false, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return models.Product{}, "", false, err
		}
		return product, collection, true, nil
	}
	return models.Product{}, "", false, nil
}

func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, _, found, err := findProductAnyCategory(ctx, db, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

/* =========================
   CREATE
========================= */

func CreateProduct(db *mongo.Database, store storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if !input.TitleSet || input.Title == "" || !input.PriceSet || !input.CategorySet || !input.ImageSet {
			respondWithError(c, http.StatusBadRequest, route, "Missing required fields")
			return
		}

		collection, ok := collectionForCategory(input.Category)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid or missing category")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		imagePath, err := store.Save(ctx, input.Image)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] image save failed:", err)
			respondWithError(c, imageSaveStatus(err), route, err.Error())
			return
		}

		product := models.Product{
			Title:    input.Title,
			Price:    input.Price,
			OldPrice: input.OldPrice,
			Image:    imagePath,
			Category: collection,
			Gender:   input.Gender,
		}
		applyFacets(&product, collection, input.Facets)

		res, err := db.Collection(collection).InsertOne(ctx, product)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to create product")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		log.Printf("[%s] created %s in %s", route, product.ID.Hex(), collection)
		c.JSON(http.StatusCreated, gin.H{"message": "Product added!", "product": product})
	}
}

// imageSaveStatus maps a rejected upload to 400 and everything else (disk or
// bucket failures) to 500.
func imageSaveStatus(err error) int {
	var validationErr *storage.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// applyFacets copies only the facet fields the category defines.
func applyFacets(product *models.Product, category string, facets map[string]models.FacetList) {
	for _, field := range models.FacetFields[category] {
		values, ok := facets[field]
		if !ok {
			continue
		}
		switch field {
		case "summerType":
			product.SummerType = values
		case "summerStyle":
			product.SummerStyle = values
		case "winterType":
			product.WinterType = values
		case "winterStyle":
			product.WinterStyle = values
		case "royalType":
			product.RoyalType = values
		case "accessoriesType":
			product.AccessoriesType = values
		}
	}
}

/* =========================
   UPDATE
========================= */

func UpdateProduct(db *mongo.Database, store storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		existing, collection, found, err := findProductAnyCategory(ctx, db, id)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		set := bson.M{}
		if input.TitleSet {
			set["title"] = input.Title
		}
		if input.PriceSet {
			set["price"] = input.Price
		}
		if input.OldPriceSet {
			set["oldPrice"] = input.OldPrice
		}
		if input.GenderSet {
			set["gender"] = input.Gender
		}
		for _, field := range models.FacetFields[collection] {
			if values, ok := input.Facets[field]; ok {
				set[field] = values
			}
		}

		if input.ImageSet {
			imagePath, err := store.Save(ctx, input.Image)
			if err != nil {
				log.Println("[PRODUCT] [ERROR] image save failed:", err)
				respondWithError(c, imageSaveStatus(err), route, err.Error())
				return
			}
			set["image"] = imagePath

			// old upload is best-effort cleanup, a miss never fails the update
			if existing.Image != "" {
				if err := store.Delete(ctx, existing.Image); err != nil {
					log.Println("[PRODUCT] [ERROR] old image delete failed:", err)
				}
			}
		}

		if len(set) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": existing})
			return
		}

		if _, err := db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			log.Println("[PRODUCT] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update product")
			return
		}

		updated, _, _, err := findProductAnyCategory(ctx, db, id)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Server error")
			return
		}

		log.Printf("[%s] updated %s in %s", route, id.Hex(), collection)
		c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
	}
}

/* =========================
   DELETE
========================= */

func DeleteProduct(db *mongo.Database, store storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		product, collection, found, err := findProductAnyCategory(ctx, db, id)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to delete product")
			return
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}

		if product.Image != "" {
			if err := store.Delete(ctx, product.Image); err != nil {
				log.Println("[PRODUCT] [ERROR] image delete failed:", err)
			}
		}

		if _, err := db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to delete product")
			return
		}

		log.Printf("[%s] deleted %s from %s", route, id.Hex(), collection)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
