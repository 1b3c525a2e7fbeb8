package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tableorder/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type MenuItemInput struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	CategoryID      int              `json:"category_id"`
	IsAvailable     *bool            `json:"is_available"`
	PreparationTime int              `json:"preparation_time"`
	IsSpicy         bool             `json:"is_spicy"`
	IsVegetarian    bool             `json:"is_vegetarian"`
	IsVegan         bool             `json:"is_vegan"`
	Allergens       []string         `json:"allergens"`
	Nutrition       domain.Nutrition `json:"nutritional_info"`
}

func (in MenuItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if !in.Price.IsPositive() {
		return invalid("price must be greater than zero")
	}
	if in.PreparationTime < 0 {
		return invalid("preparation_time must not be negative")
	}
	if in.CategoryID < 0 {
		return invalid("category_id must not be negative")
	}
	return nil
}

func (in MenuItemInput) apply(item *domain.MenuItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = in.Price.Round(2)
	if in.CategoryID != 0 {
		item.CategoryID = in.CategoryID
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	item.PreparationTime = in.PreparationTime
	item.IsSpicy = in.IsSpicy
	item.IsVegetarian = in.IsVegetarian
	item.IsVegan = in.IsVegan
	item.Allergens = in.Allergens
	if item.Allergens == nil {
		item.Allergens = []string{}
	}
	item.Nutrition = in.Nutrition
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ItemIDs     []int  `json:"items"`
}

type MenuInput struct {
	Name         string              `json:"name"`
	Type         domain.MenuType     `json:"type"`
	Categories   []CategoryInput     `json:"categories"`
	IsActive     bool                `json:"is_active"`
	Availability domain.Availability `json:"availability"`
}

func (in MenuInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if in.Type != "" && !in.Type.Valid() {
		return invalid("unknown menu type %q", in.Type)
	}
	for i, category := range in.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return invalid("categories[%d].name is required", i)
		}
	}
	for _, day := range in.Availability.Days {
		if day < 0 || day > 6 {
			return invalid("availability.days must be within 0..6")
		}
	}
	return nil
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, caller domain.Caller, in MenuItemInput) (*domain.MenuItem, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, caller.RestaurantID, in.CategoryID); err != nil {
		return nil, err
	}
	item := &domain.MenuItem{RestaurantID: caller.RestaurantID, IsAvailable: true}
	in.apply(item)
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, upstream("create menu item", err)
	}
	return item, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, caller domain.Caller, id int) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrMenuItemNotFound, "get menu item")
	}
	if !caller.Owns(item.RestaurantID) {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *CatalogService) ListMenuItems(ctx context.Context, caller domain.Caller) ([]domain.MenuItem, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	items, err := s.repo.ListMenuItems(ctx, caller.RestaurantID)
	if err != nil {
		return nil, upstream("list menu items", err)
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

// UpdateMenuItem edits the catalog only; prices already frozen into orders stay as they were.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, caller domain.Caller, id int, in MenuItemInput) (*domain.MenuItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item, err := s.GetMenuItem(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, item.RestaurantID, in.CategoryID); err != nil {
		return nil, err
	}
	in.apply(item)
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, lookupErr(err, ErrMenuItemNotFound, "update menu item")
	}
	return item, nil
}

// checkCategory accepts zero (no category) or a category of one of the restaurant's menus.
func (s *CatalogService) checkCategory(ctx context.Context, restaurantID, categoryID int) error {
	if categoryID == 0 {
		return nil
	}
	menus, err := s.repo.ListMenus(ctx, restaurantID)
	if err != nil {
		return upstream("list menus", err)
	}
	for _, menu := range menus {
		for _, category := range menu.Categories {
			if category.ID == categoryID {
				return nil
			}
		}
	}
	return invalid("category_id %d is not a category of this restaurant", categoryID)
}

type AvailabilityInput struct {
	IsAvailable *bool `json:"is_available"`
}

// SetAvailability toggles whether customers can order the item.
func (s *CatalogService) SetAvailability(ctx context.Context, caller domain.Caller, id int, in AvailabilityInput) (*domain.MenuItem, error) {
	if in.IsAvailable == nil {
		return nil, invalid("is_available is required")
	}
	item, err := s.GetMenuItem(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if item.IsAvailable == *in.IsAvailable {
		return item, nil
	}
	item.IsAvailable = *in.IsAvailable
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, lookupErr(err, ErrMenuItemNotFound, "set menu item availability")
	}
	return item, nil
}

func (s *CatalogService) CreateMenu(ctx context.Context, caller domain.Caller, in MenuInput) (*domain.Menu, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	menu := &domain.Menu{
		RestaurantID: caller.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		Availability: in.Availability,
		Categories:   make([]domain.Category, 0, len(in.Categories)),
	}
	if menu.Type == "" {
		menu.Type = domain.MenuDefault
	}

	for i, category := range in.Categories {
		for _, itemID := range category.ItemIDs {
			if _, err := s.GetMenuItem(ctx, caller, itemID); err != nil {
				if errors.Is(err, ErrForbidden) {
					return nil, fmt.Errorf("%w: %d", ErrMenuItemNotFound, itemID)
				}
				return nil, err
			}
		}
		itemIDs := category.ItemIDs
		if itemIDs == nil {
			itemIDs = []int{}
		}
		menu.Categories = append(menu.Categories, domain.Category{
			Name:        strings.TrimSpace(category.Name),
			Description: category.Description,
			Position:    i,
			ItemIDs:     itemIDs,
		})
	}

	if err := s.repo.CreateMenu(ctx, menu); err != nil {
		return nil, upstream("create menu", err)
	}
	if in.IsActive {
		if err := s.repo.ActivateMenu(ctx, menu.RestaurantID, menu.ID); err != nil {
			return nil, upstream("activate menu", err)
		}
		menu.IsActive = true
	}
	return menu, nil
}

func (s *CatalogService) ListMenus(ctx context.Context, caller domain.Caller) ([]domain.Menu, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	menus, err := s.repo.ListMenus(ctx, caller.RestaurantID)
	if err != nil {
		return nil, upstream("list menus", err)
	}
	if menus == nil {
		menus = []domain.Menu{}
	}
	return menus, nil
}

func (s *CatalogService) ActivateMenu(ctx context.Context, caller domain.Caller, menuID int) error {
	menu, err := s.repo.GetMenu(ctx, menuID)
	if err != nil {
		return lookupErr(err, ErrMenuNotFound, "get menu")
	}
	if !caller.Owns(menu.RestaurantID) {
		return ErrForbidden
	}
	if err := s.repo.ActivateMenu(ctx, menu.RestaurantID, menu.ID); err != nil {
		return upstream("activate menu", err)
	}
	return nil
}

// GetActiveMenu returns nil, nil when the restaurant has no active menu.
func (s *CatalogService) GetActiveMenu(ctx context.Context, restaurantID int) (*domain.Menu, error) {
	menu, err := s.repo.GetActiveMenu(ctx, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, upstream("get active menu", err)
	}
	return menu, nil
}

func (s *CatalogService) ResolveCategoryName(ctx context.Context, menuID, categoryID int) string {
	menu, err := s.repo.GetMenu(ctx, menuID)
	if err != nil {
		return domain.UncategorizedLabel
	}
	for _, category := range menu.Categories {
		if category.ID == categoryID {
			return category.Name
		}
	}
	return domain.UncategorizedLabel
}
