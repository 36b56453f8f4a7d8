package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// orderings the listing endpoint accepts, mapped to SQL
var productOrderings = map[string]string{
	"price":       "p.price ASC",
	"-price":      "p.price DESC",
	"name":        "p.name ASC",
	"-name":       "p.name DESC",
	"created_at":  "p.created_at ASC",
	"-created_at": "p.created_at DESC",
}

// GetProducts lists the catalog. Filters: category (slug, category__slug
// accepted as an alias), featured, min_price, max_price, size, color,
// search. Ordering defaults to newest first.
func GetProducts(c *gin.Context) {
	query := `
		SELECT DISTINCT p.id, p.name, p.description, p.price, p.category_id,
		       p.image_url, p.featured, p.rating, p.material, p.sole_type,
		       p.weight, p.is_water_resistant, p.care_instructions, p.created_at,
		       c.name, c.slug
		FROM products p
		JOIN categories c ON p.category_id = c.id`

	joins := ""
	conditions := []string{}
	args := []interface{}{}

	categorySlug := c.Query("category")
	if categorySlug == "" {
		categorySlug = c.Query("category__slug")
	}
	if categorySlug != "" {
		args = append(args, categorySlug)
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", len(args)))
	}

	if featured := c.Query("featured"); featured != "" {
		want := featured == "true" || featured == "1"
		args = append(args, want)
		conditions = append(conditions, fmt.Sprintf("p.featured = $%d", len(args)))
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		v, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return
		}
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", len(args)))
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", len(args)))
	}

	size := c.Query("size")
	color := c.Query("color")
	if size != "" || color != "" {
		joins = " JOIN product_variants pv ON pv.product_id = p.id"
		if size != "" {
			args = append(args, size)
			conditions = append(conditions, fmt.Sprintf("pv.size = $%d", len(args)))
		}
		if color != "" {
			args = append(args, color)
			conditions = append(conditions, fmt.Sprintf("pv.color ILIKE $%d", len(args)))
		}
	}

	if search := c.Query("search"); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	query += joins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy, ok := productOrderings[c.Query("ordering")]
	if !ok {
		orderBy = "p.created_at DESC"
	}
	query += " ORDER BY " + orderBy

	rows, err := database.Database.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []gin.H{}
	for rows.Next() {
		var p models.Product
		var categoryName, slug string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
			&p.ImageURL, &p.Featured, &p.Rating, &p.Material, &p.SoleType,
			&p.Weight, &p.IsWaterResistant, &p.CareInstructions, &p.CreatedAt,
			&categoryName, &slug,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
			return
		}
		products = append(products, gin.H{
			"id":            p.ID,
			"name":          p.Name,
			"description":   p.Description,
			"price":         p.Price,
			"image_url":     p.ImageURL,
			"featured":      p.Featured,
			"rating":        p.Rating,
			"category_id":   p.CategoryID,
			"category_name": categoryName,
			"category_slug": slug,
			"created_at":    p.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct returns a product with its gallery, its variant matrix
// grouped color -> sizes, and the viewer's wishlist flag.
func GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var p models.Product
	var categoryName, categorySlug string
	err = database.Database.QueryRow(`
		SELECT p.id, p.name, p.description, p.price, p.category_id,
		       p.image_url, p.featured, p.rating, p.material, p.sole_type,
		       p.weight, p.is_water_resistant, p.care_instructions, p.created_at,
		       c.name, c.slug
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.ImageURL, &p.Featured, &p.Rating, &p.Material, &p.SoleType,
		&p.Weight, &p.IsWaterResistant, &p.CareInstructions, &p.CreatedAt,
		&categoryName, &categorySlug,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	images, err := fetchProductImages(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}

	variantsByColor, err := fetchVariantMatrix(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
		return
	}

	inWishlist := false
	if idStr := c.GetString("user_id"); idStr != "" {
		if userID, err := uuid.Parse(idStr); err == nil {
			database.Database.QueryRow(`
				SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
				userID, productID).Scan(&inWishlist)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 p.ID,
		"name":               p.Name,
		"description":        p.Description,
		"price":              p.Price,
		"image_url":          p.ImageURL,
		"featured":           p.Featured,
		"rating":             p.Rating,
		"material":           p.Material,
		"sole_type":          p.SoleType,
		"weight":             p.Weight,
		"is_water_resistant": p.IsWaterResistant,
		"care_instructions":  p.CareInstructions,
		"category_id":        p.CategoryID,
		"category_name":      categoryName,
		"category_slug":      categorySlug,
		"created_at":         p.CreatedAt,
		"images":             images,
		"variants":           variantsByColor,
		"in_wishlist":        inWishlist,
	})
}

func fetchProductImages(productID uuid.UUID) ([]models.ProductImage, error) {
	rows, err := database.Database.Query(`
		SELECT id, product_id, url, alt_text, position
		FROM product_images
		WHERE product_id = $1
		ORDER BY position, id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.AltText, &img.Position); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// fetchVariantMatrix groups variants color -> size entries, carrying
// the per-color swatch image when one is set.
func fetchVariantMatrix(productID uuid.UUID) ([]gin.H, error) {
	rows, err := database.Database.Query(`
		SELECT id, color, size, stock, sku, COALESCE(color_image_url, '')
		FROM product_variants
		WHERE product_id = $1
		ORDER BY color, size`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type sizeEntry struct {
		ID      uuid.UUID `json:"id"`
		Size    string    `json:"size"`
		Stock   int       `json:"stock"`
		SKU     string    `json:"sku"`
		InStock bool      `json:"in_stock"`
		Low     bool      `json:"low_stock"`
	}

	colorOrder := []string{}
	colorImage := map[string]string{}
	sizes := map[string][]sizeEntry{}

	for rows.Next() {
		var v models.ProductVariant
		var image string
		if err := rows.Scan(&v.ID, &v.Color, &v.Size, &v.Stock, &v.SKU, &image); err != nil {
			return nil, err
		}
		if _, seen := sizes[v.Color]; !seen {
			colorOrder = append(colorOrder, v.Color)
			colorImage[v.Color] = image
		}
		sizes[v.Color] = append(sizes[v.Color], sizeEntry{
			ID:      v.ID,
			Size:    v.Size,
			Stock:   v.Stock,
			SKU:     v.SKU,
			InStock: v.IsInStock(),
			Low:     v.IsLowStock(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	matrix := []gin.H{}
	for _, color := range colorOrder {
		matrix = append(matrix, gin.H{
			"color": color,
			"image": colorImage[color],
			"sizes": sizes[color],
		})
	}
	return matrix, nil
}
