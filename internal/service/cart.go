package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/cart_api/internal/events"
	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/models"
	"github.com/Skotchmaster/cart_api/internal/repo"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, cartID int64) (*models.CartSnapshot, error)
	AddItem(ctx context.Context, cartID, productID, quantity int64) (*models.AddItemResult, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID, quantity int64) (int64, error)
	RemoveItem(ctx context.Context, cartID, productID int64) (int64, error)
	ClearCart(ctx context.Context, cartID int64) (int64, error)
}

type EventPublisher interface {
	PublishCartEvent(ctx context.Context, ev events.CartEvent) error
}

type CartService struct {
	Repo   CartRepository
	Events EventPublisher
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.CartSnapshot, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(ctx, cart.ID)
}

// AddItem adds quantity of a product, accumulating onto an existing line.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int64) (*models.CartSnapshot, error) {
	if err := ValidateAddItem(productID, quantity); err != nil {
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.Repo.AddItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		if errors.Is(err, repo.ErrQuantityOverflow) {
			return nil, validationError(MsgQuantityTooLarge)
		}
		return nil, err
	}

	logging.FromContext(ctx).Debug("cart_item_added", "cart_id", cart.ID, "item_id", res.ID, "merged", res.Updated)
	s.publish(ctx, events.NewCartEvent(events.CartItemAdded, userID, cart.ID).WithItem(productID, quantity))

	return s.Repo.GetCartWithItems(ctx, cart.ID)
}

// UpdateItem sets the exact quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID int64, quantity *int64) (*models.CartSnapshot, error) {
	if err := ValidateUpdateQuantity(quantity); err != nil {
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if *quantity == 0 {
		changes, err := s.Repo.RemoveItem(ctx, cart.ID, productID)
		if err != nil {
			return nil, err
		}
		if changes == 0 {
			return nil, notFoundError(MsgItemNotFound)
		}
		s.publish(ctx, events.NewCartEvent(events.CartItemRemoved, userID, cart.ID).WithItem(productID, 0))
	} else {
		changes, err := s.Repo.UpdateItemQuantity(ctx, cart.ID, productID, *quantity)
		if err != nil {
			return nil, err
		}
		if changes == 0 {
			return nil, notFoundError(MsgItemNotFound)
		}
		s.publish(ctx, events.NewCartEvent(events.CartItemUpdated, userID, cart.ID).WithItem(productID, *quantity))
	}

	return s.Repo.GetCartWithItems(ctx, cart.ID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (*models.CartSnapshot, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes, err := s.Repo.RemoveItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if changes == 0 {
		return nil, notFoundError(MsgItemNotFound)
	}
	s.publish(ctx, events.NewCartEvent(events.CartItemRemoved, userID, cart.ID).WithItem(productID, 0))

	return s.Repo.GetCartWithItems(ctx, cart.ID)
}

// ClearCart deletes every item; an already empty cart is not an error.
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return err
	}
	s.publish(ctx, events.NewCartEvent(events.CartCleared, userID, cart.ID))

	return nil
}

func (s *CartService) publish(ctx context.Context, ev events.CartEvent) {
	if s.Events == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Events.PublishCartEvent(pubCtx, ev); err != nil {
		logging.FromContext(ctx).Warn("cart_event_publish_error", "type", ev.Type, "cart_id", ev.CartID, "error", err)
	}
}
