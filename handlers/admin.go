package handlers

import (
	"net/http"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ---- Staff ----

type CreateStaffRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

// CreateStaffUser creates an employee account with a staff role
func CreateStaffUser(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Role.IsStaff() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be a staff role"})
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
		Active:       true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff user created", "user": user})
}

// ListStaff returns all employee accounts
func ListStaff(c *gin.Context) {
	var users []models.User
	config.DB.Where("role <> ?", models.RoleCustomer).Order("name").Find(&users)
	c.JSON(http.StatusOK, gin.H{"staff": users})
}

// SetUserActive enables or disables an account
func SetUserActive(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.DB.Model(&user).Update("active", *req.Active)
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
}

// ---- Inventory ----

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateSupplier registers an ingredient supplier
func CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier := models.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	if err := config.DB.Create(&supplier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Supplier created", "supplier": supplier})
}

type IngredientCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SupplierID  *uint  `json:"supplier_id"`
}

// CreateIngredientCategory groups ingredients for inventory reports
func CreateIngredientCategory(c *gin.Context) {
	var req IngredientCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.IngredientCategory{
		Name:        req.Name,
		Description: req.Description,
		SupplierID:  req.SupplierID,
		Active:      true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient category created", "category": category})
}

type IngredientRequest struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	MinStock        decimal.Decimal  `json:"min_stock"`
	MaxStock        *decimal.Decimal `json:"max_stock"`
	UnitOfMeasure   string           `json:"unit_of_measure" binding:"required"`
	CostPerUnit     *decimal.Decimal `json:"cost_per_unit"`
	Currency        string           `json:"currency"`
	StorageLocation string           `json:"storage_location"`
	ShelfLifeDays   *int             `json:"shelf_life_days"`
	CategoryID      uint             `json:"category_id" binding:"required"`
}

// CreateIngredient adds an inventory item
func CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := models.Ingredient{
		Name:            req.Name,
		Description:     req.Description,
		CurrentStock:    req.CurrentStock,
		MinStock:        req.MinStock,
		MaxStock:        req.MaxStock,
		UnitOfMeasure:   req.UnitOfMeasure,
		CostPerUnit:     req.CostPerUnit,
		Currency:        req.Currency,
		StorageLocation: req.StorageLocation,
		ShelfLifeDays:   req.ShelfLifeDays,
		CategoryID:      req.CategoryID,
		Active:          true,
	}
	if ingredient.Currency == "" {
		ingredient.Currency = "USD"
	}
	if err := ingredient.ValidateStockLevels(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient created", "ingredient": ingredient})
}

// UpdateIngredient modifies an ingredient's master data
func UpdateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := config.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient.Name = req.Name
	ingredient.Description = req.Description
	ingredient.CurrentStock = req.CurrentStock
	ingredient.MinStock = req.MinStock
	ingredient.MaxStock = req.MaxStock
	ingredient.UnitOfMeasure = req.UnitOfMeasure
	ingredient.CostPerUnit = req.CostPerUnit
	ingredient.StorageLocation = req.StorageLocation
	ingredient.ShelfLifeDays = req.ShelfLifeDays
	ingredient.CategoryID = req.CategoryID
	if req.Currency != "" {
		ingredient.Currency = req.Currency
	}
	if err := ingredient.ValidateStockLevels(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Save(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}
	refreshAvailabilityForIngredient(config.DB, ingredient.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated", "ingredient": ingredient})
}

type AdjustStockRequest struct {
	// Positive receives stock, negative writes off spoilage or waste
	Delta decimal.Decimal `json:"delta" binding:"required"`
	Notes string          `json:"notes"`
}

// AdjustIngredientStock applies a manual stock movement
func AdjustIngredientStock(c *gin.Context) {
	var ingredient models.Ingredient
	if err := config.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStock := ingredient.CurrentStock.Add(req.Delta)
	if newStock.IsNegative() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Adjustment would leave negative stock",
			"available": ingredient.CurrentStock,
		})
		return
	}
	ingredient.CurrentStock = newStock
	if err := ingredient.ValidateStockLevels(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ingredient).Update("current_stock", newStock).Error; err != nil {
			return err
		}
		return refreshAvailabilityForIngredient(tx, ingredient.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Stock adjusted",
		"ingredient":   ingredient.Name,
		"new_stock":    newStock,
		"stock_status": ingredient.StockStatus(),
	})
}

// refreshAvailabilityForIngredient recomputes the available flag of every menu
// item whose recipe uses the ingredient
func refreshAvailabilityForIngredient(tx *gorm.DB, ingredientID uint) error {
	var lines []models.RecipeLine
	if err := tx.Where("ingredient_id = ?", ingredientID).Find(&lines).Error; err != nil {
		return err
	}
	for _, line := range lines {
		var item models.MenuItem
		if err := tx.Preload("Recipe.Ingredient").First(&item, line.MenuItemID).Error; err != nil {
			continue
		}
		item.UpdateAvailability()
		if err := tx.Model(&item).Update("available", item.Available).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetInventoryReport lists every active ingredient with its stock
// classification and fill percentage
func GetInventoryReport(c *gin.Context) {
	var ingredients []models.Ingredient
	config.DB.Preload("Category").Where("active = ?", true).Order("name").Find(&ingredients)

	type row struct {
		models.Ingredient
		StockStatus     string `json:"stock_status"`
		StockPercentage int    `json:"stock_percentage"`
	}
	rows := make([]row, 0, len(ingredients))
	low, out := 0, 0
	for i := range ingredients {
		status := ingredients[i].StockStatus()
		switch status {
		case models.StockStatusLow:
			low++
		case models.StockStatusOut:
			out++
		}
		rows = append(rows, row{
			Ingredient:      ingredients[i],
			StockStatus:     status,
			StockPercentage: ingredients[i].StockPercentage(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(rows),
		"low_stock":    low,
		"out_of_stock": out,
		"ingredients":  rows,
	})
}

// ---- Menu ----

type RecipeLineRequest struct {
	IngredientID uint            `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
}

type MenuItemRequest struct {
	Name                string              `json:"name" binding:"required"`
	Description         string              `json:"description"`
	Price               decimal.Decimal     `json:"price" binding:"required"`
	ImageURL            string              `json:"image_url"`
	RequiresPreparation *bool               `json:"requires_preparation"`
	CategoryID          uint                `json:"category_id" binding:"required"`
	Recipe              []RecipeLineRequest `json:"recipe" binding:"dive"`
}

func buildRecipeLines(tx *gorm.DB, reqs []RecipeLineRequest) ([]models.RecipeLine, error) {
	var lines []models.RecipeLine
	for _, r := range reqs {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, r.IngredientID).Error; err != nil {
			return nil, err
		}
		line := models.RecipeLine{
			IngredientID: r.IngredientID,
			Ingredient:   &ingredient,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
		}
		if err := line.Validate(); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// CreateMenuItem adds a dish or drink to the menu with its recipe
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		Name:                req.Name,
		Description:         req.Description,
		Price:               req.Price,
		ImageURL:            req.ImageURL,
		CategoryID:          req.CategoryID,
		Active:              true,
		RequiresPreparation: true,
	}
	if req.RequiresPreparation != nil {
		item.RequiresPreparation = *req.RequiresPreparation
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		lines, err := buildRecipeLines(tx, req.Recipe)
		if err != nil {
			return err
		}
		item.Recipe = lines
		item.UpdateAvailability()
		return tx.Create(&item).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// UpdateMenuItem modifies a menu item and replaces its recipe
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Recipe").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.CategoryID = req.CategoryID
	if req.RequiresPreparation != nil {
		item.RequiresPreparation = *req.RequiresPreparation
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		lines, err := buildRecipeLines(tx, req.Recipe)
		if err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.RecipeLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].MenuItemID = item.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		item.Recipe = lines
		item.UpdateAvailability()
		return tx.Save(&item).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// SetMenuItemActive soft-deletes or restores a menu item
func SetMenuItemActive(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.DB.Model(&item).Update("active", *req.Active)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// GetMenuItemCosting returns ingredient cost and profit margin for an item
func GetMenuItemCosting(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Recipe.Ingredient").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item":             item.Name,
		"price":            item.Price,
		"ingredients_cost": item.IngredientsCost(),
		"profit_margin":    item.ProfitMarginPercentage(),
	})
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a menu category
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.Category{Name: req.Name, Description: req.Description, Active: true}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// ---- Promotions ----

type PromotionRequest struct {
	Name               string               `json:"name" binding:"required"`
	Description        string               `json:"description"`
	ImageURL           string               `json:"image_url"`
	PromotionType      models.PromotionType `json:"promotion_type" binding:"required"`
	BuyQuantity        *int                 `json:"buy_quantity"`
	PayQuantity        *int                 `json:"pay_quantity"`
	DiscountPercentage *decimal.Decimal     `json:"discount_percentage"`
	DiscountAmount     *decimal.Decimal     `json:"discount_amount"`
	StartDate          time.Time            `json:"start_date" binding:"required"`
	EndDate            time.Time            `json:"end_date" binding:"required"`
	ValidDays          string               `json:"valid_days" binding:"required"`
	Priority           int                  `json:"priority"`
	MenuItemIDs        []uint               `json:"menu_item_ids" binding:"required,min=1"`
}

func promotionFromRequest(req *PromotionRequest) models.Promotion {
	return models.Promotion{
		Name:               req.Name,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		PromotionType:      req.PromotionType,
		BuyQuantity:        req.BuyQuantity,
		PayQuantity:        req.PayQuantity,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ValidDays:          req.ValidDays,
		Priority:           req.Priority,
		Active:             true,
	}
}

// CreatePromotion adds a discount rule and attaches it to menu items
func CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := promotionFromRequest(&req)
	if promo.Priority == 0 {
		promo.Priority = 1
	}
	if err := promo.ValidateConfiguration(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var items []*models.MenuItem
		if err := tx.Find(&items, req.MenuItemIDs).Error; err != nil {
			return err
		}
		if len(items) != len(req.MenuItemIDs) {
			return errUnknownMenuItems
		}
		promo.Items = items
		return tx.Create(&promo).Error
	})
	if err == errUnknownMenuItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more menu items do not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Promotion created", "promotion": promo})
}

// UpdatePromotion modifies a promotion and its item assignments
func UpdatePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := config.DB.First(&promo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Assign onto the loaded row so creation metadata survives the update
	promo.Name = req.Name
	promo.Description = req.Description
	promo.ImageURL = req.ImageURL
	promo.PromotionType = req.PromotionType
	promo.BuyQuantity = req.BuyQuantity
	promo.PayQuantity = req.PayQuantity
	promo.DiscountPercentage = req.DiscountPercentage
	promo.DiscountAmount = req.DiscountAmount
	promo.StartDate = req.StartDate
	promo.EndDate = req.EndDate
	promo.ValidDays = req.ValidDays
	if req.Priority != 0 {
		promo.Priority = req.Priority
	}
	if err := promo.ValidateConfiguration(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var items []*models.MenuItem
		if err := tx.Find(&items, req.MenuItemIDs).Error; err != nil {
			return err
		}
		if len(items) != len(req.MenuItemIDs) {
			return errUnknownMenuItems
		}
		if err := tx.Save(&promo).Error; err != nil {
			return err
		}
		return tx.Model(&promo).Association("Items").Replace(items)
	})
	if err == errUnknownMenuItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more menu items do not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promotion updated", "promotion": promo})
}

// SetPromotionActive toggles a promotion without deleting it
func SetPromotionActive(c *gin.Context) {
	var promo models.Promotion
	if err := config.DB.First(&promo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.DB.Model(&promo).Update("active", *req.Active)
	c.JSON(http.StatusOK, gin.H{"message": "Promotion updated", "promotion": promo})
}

// ---- Tables ----

type TableRequest struct {
	TableNumber int    `json:"table_number" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
	Location    string `json:"location"`
}

// CreateTable registers a restaurant table
func CreateTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	table := models.RestaurantTable{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Status:      models.TableAvailable,
		Active:      true,
	}
	if err := table.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Table number already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created", "table": table})
}

// ---- Shifts ----

type ShiftRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	DayOfWeek  string `json:"day_of_week" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

// CreateShift assigns a weekly work slot to an employee
func CreateShift(c *gin.Context) {
	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.User
	if err := config.DB.First(&employee, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	if !employee.Role.IsStaff() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shifts can only be assigned to staff"})
		return
	}

	shift := models.Shift{
		EmployeeID: req.EmployeeID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Active:     true,
	}
	if err := shift.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shift"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shift created", "shift": shift})
}

// ListShifts returns the weekly schedule, optionally for one employee
func ListShifts(c *gin.Context) {
	query := config.DB.Preload("Employee").Where("active = ?", true)
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	var shifts []models.Shift
	query.Order("day_of_week, start_time").Find(&shifts)
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

// DeactivateShift removes a slot from the schedule
func DeactivateShift(c *gin.Context) {
	var shift models.Shift
	if err := config.DB.First(&shift, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}
	config.DB.Model(&shift).Update("active", false)
	c.JSON(http.StatusOK, gin.H{"message": "Shift deactivated"})
}

// ---- Dashboard ----

// GetDashboardSummary aggregates today's operational numbers for the admin
func GetDashboardSummary(c *gin.Context) {
	start := startOfDay(time.Now())

	var ordersToday, activeOrders, paidToday int64
	config.DB.Model(&models.Order{}).Where("created_at >= ?", start).Count(&ordersToday)
	config.DB.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{
			models.StatusPending, models.StatusInPreparation,
			models.StatusReady, models.StatusOnTheWay,
		}).Count(&activeOrders)
	config.DB.Model(&models.Order{}).
		Where("status = ? AND updated_at >= ?", models.StatusPaid, start).Count(&paidToday)

	var sales []models.Order
	config.DB.Where("status = ? AND updated_at >= ?", models.StatusPaid, start).Find(&sales)
	revenue := decimal.Zero
	for _, o := range sales {
		revenue = revenue.Add(o.Total)
	}

	var ingredients []models.Ingredient
	config.DB.Where("active = ?", true).Find(&ingredients)
	low, out := 0, 0
	for i := range ingredients {
		switch ingredients[i].StockStatus() {
		case models.StockStatusLow:
			low++
		case models.StockStatusOut:
			out++
		}
	}

	var occupied int64
	config.DB.Model(&models.RestaurantTable{}).
		Where("status = ? AND active = ?", models.TableOccupied, true).Count(&occupied)

	c.JSON(http.StatusOK, gin.H{
		"date":             start.Format("2006-01-02"),
		"orders_today":     ordersToday,
		"active_orders":    activeOrders,
		"orders_paid":      paidToday,
		"revenue_today":    revenue,
		"low_stock":        low,
		"out_of_stock":     out,
		"occupied_tables":  occupied,
		"connected_boards": Hub.ClientCount(),
	})
}
