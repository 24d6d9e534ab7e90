// Package handler contains the HTTP request handlers.
package handler

import (
	"strconv"
	"time"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountView is the public shape of an account. The password hash never
// leaves the domain layer.
type AccountView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoreView is the public shape of a store with its rating aggregates.
type StoreView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	OwnerID       int64     `json:"ownerId"`
	AverageRating float64   `json:"averageRating"`
	RatingCount   int64     `json:"ratingCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RatingView is the public shape of a rating.
type RatingView struct {
	ID         int64     `json:"id"`
	StoreID    int64     `json:"storeId"`
	UserID     int64     `json:"userId"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	OwnerReply string    `json:"ownerReply,omitempty"`
	UserName   string    `json:"userName,omitempty"`
	StoreName  string    `json:"storeName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BrowsedStoreView is a store with the requesting user's own rating attached.
type BrowsedStoreView struct {
	StoreView
	MyRating *RatingView `json:"myRating,omitempty"`
}

func newAccountView(account *entity.Account) *AccountView {
	return &AccountView{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role.String(),
		Status:    account.Status.String(),
		Address:   account.Address,
		CreatedAt: account.CreatedAt,
	}
}

func newAccountViews(accounts []*entity.Account) []*AccountView {
	views := make([]*AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, newAccountView(account))
	}

	return views
}

func newStoreView(store *entity.Store) *StoreView {
	return &StoreView{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		RatingCount:   store.RatingCount,
		CreatedAt:     store.CreatedAt,
	}
}

func newStoreViews(stores []*entity.Store) []*StoreView {
	views := make([]*StoreView, 0, len(stores))
	for _, store := range stores {
		views = append(views, newStoreView(store))
	}

	return views
}

func newRatingView(rating *entity.Rating) *RatingView {
	return &RatingView{
		ID:         rating.ID,
		StoreID:    rating.StoreID,
		UserID:     rating.UserID,
		Score:      rating.Score,
		Comment:    rating.Comment,
		OwnerReply: rating.OwnerReply,
		UserName:   rating.UserName,
		StoreName:  rating.StoreName,
		CreatedAt:  rating.CreatedAt,
		UpdatedAt:  rating.UpdatedAt,
	}
}

func newRatingViews(ratings []*entity.Rating) []*RatingView {
	views := make([]*RatingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, newRatingView(rating))
	}

	return views
}

func newBrowsedStoreViews(browsed []*usecase.BrowsedStore) []*BrowsedStoreView {
	views := make([]*BrowsedStoreView, 0, len(browsed))
	for _, item := range browsed {
		view := &BrowsedStoreView{StoreView: *newStoreView(item.Store)}
		if item.MyRating != nil {
			view.MyRating = newRatingView(item.MyRating)
		}
		views = append(views, view)
	}

	return views
}

// pathID parses the named numeric path parameter. The returned error renders
// as a 400 at the request boundary.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " parameter")
	}

	return id, nil
}
