package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"
	"github.com/qanoot-iftekhar/mywebsite/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CreateProduct adds a catalog entry.
func CreateProduct(c *gin.Context) {
	var req struct {
		Name             string  `json:"name" binding:"required"`
		Description      string  `json:"description"`
		Price            float64 `json:"price" binding:"required,gt=0"`
		CategoryID       string  `json:"category_id" binding:"required"`
		ImageURL         string  `json:"image_url"`
		Featured         bool    `json:"featured"`
		Material         string  `json:"material"`
		SoleType         string  `json:"sole_type"`
		Weight           string  `json:"weight"`
		IsWaterResistant bool    `json:"is_water_resistant"`
		CareInstructions string  `json:"care_instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var exists bool
	if err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	productID := uuid.New()
	_, err = database.Database.Exec(`
		INSERT INTO products (id, name, description, price, category_id, image_url,
			featured, material, sole_type, weight, is_water_resistant, care_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		productID, req.Name, req.Description, req.Price, categoryID, req.ImageURL,
		req.Featured, req.Material, req.SoleType, req.Weight, req.IsWaterResistant,
		req.CareInstructions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Product created",
		"product_id": productID,
	})
}

// UpdateProduct patches a product; absent fields keep their values.
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Name             *string  `json:"name"`
		Description      *string  `json:"description"`
		Price            *float64 `json:"price"`
		ImageURL         *string  `json:"image_url"`
		Featured         *bool    `json:"featured"`
		Material         *string  `json:"material"`
		SoleType         *string  `json:"sole_type"`
		Weight           *string  `json:"weight"`
		IsWaterResistant *bool    `json:"is_water_resistant"`
		CareInstructions *string  `json:"care_instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}

	result, err := database.Database.Exec(`
		UPDATE products SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			image_url = COALESCE($4, image_url),
			featured = COALESCE($5, featured),
			material = COALESCE($6, material),
			sole_type = COALESCE($7, sole_type),
			weight = COALESCE($8, weight),
			is_water_resistant = COALESCE($9, is_water_resistant),
			care_instructions = COALESCE($10, care_instructions)
		WHERE id = $11`,
		req.Name, req.Description, req.Price, req.ImageURL, req.Featured,
		req.Material, req.SoleType, req.Weight, req.IsWaterResistant,
		req.CareInstructions, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated"})
}

// DeleteProduct removes a product; variants, images, cart lines and
// reviews cascade.
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	result, err := database.Database.Exec(`DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// UploadProductImage pushes an image to Cloudinary and appends it to
// the product's gallery.
func UploadProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var exists bool
	if err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	imageURL, err := services.Cloudinary.UploadImage(file, "products")
	if err != nil {
		log.Printf("Cloudinary upload failed for product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	altText := c.PostForm("alt_text")
	var position int
	if err := database.Database.QueryRow(`
		SELECT COALESCE(MAX(position), -1) + 1 FROM product_images WHERE product_id = $1`,
		productID).Scan(&position); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	imageID := uuid.New()
	_, err = database.Database.Exec(`
		INSERT INTO product_images (id, product_id, url, alt_text, position)
		VALUES ($1, $2, $3, $4, $5)`,
		imageID, productID, imageURL, altText, position)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"image_id": imageID,
		"url":      imageURL,
		"position": position,
	})
}

// CreateVariant adds a (color, size) stock unit to a product.
func CreateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Color         string  `json:"color" binding:"required"`
		Size          string  `json:"size" binding:"required"`
		Stock         int     `json:"stock" binding:"min=0"`
		SKU           string  `json:"sku" binding:"required"`
		ColorImageURL *string `json:"color_image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	if err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	variantID := uuid.New()
	_, err = database.Database.Exec(`
		INSERT INTO product_variants (id, product_id, color, size, stock, sku, color_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		variantID, productID, req.Color, req.Size, req.Stock, req.SKU, req.ColorImageURL)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			c.JSON(http.StatusConflict, gin.H{"error": "Variant or SKU already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Variant created",
		"variant_id": variantID,
	})
}

// UpdateVariantStock sets the absolute stock level of a variant.
func UpdateVariantStock(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant ID"})
		return
	}

	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock is required"})
		return
	}
	if *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}

	result, err := database.Database.Exec(`
		UPDATE product_variants SET stock = $1 WHERE id = $2`, *req.Stock, variantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock updated"})
}

// GetAllOrders lists every order for the admin dashboard, optionally
// filtered by status.
func GetAllOrders(c *gin.Context) {
	query := `
		SELECT id, user_id, is_guest, order_number, total_amount, status,
		       full_name, email, phone, address, city, state, zip_code,
		       payment_method, created_at
		FROM orders`
	args := []interface{}{}

	if status := c.Query("status"); status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.Database.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.IsGuest, &order.OrderNumber,
			&order.TotalAmount, &order.Status, &order.FullName, &order.Email,
			&order.Phone, &order.Address, &order.City, &order.State,
			&order.ZipCode, &order.PaymentMethod, &order.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
			return
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// UpdateOrderStatus moves an order along pending -> processing ->
// shipped -> delivered, or cancels it while still cancellable. The
// customer is notified by email.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := fetchOrder(orderID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot change status from " + order.Status + " to " + req.Status,
		})
		return
	}

	if _, err := database.Database.Exec(`
		UPDATE orders SET status = $1 WHERE id = $2`, req.Status, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	go func(o models.Order, status string) {
		if err := services.SendOrderStatusEmail(&o, status); err != nil {
			log.Printf("Failed to send status email for %s: %v", o.OrderNumber, err)
		}
	}(*order, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
		"status":  req.Status,
	})
}
