// Package reviews shows a product's reviews with the caller's own review
// split out, so a second review becomes an edit of the first.
package reviews

import (
	"context"
	"sync"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/toast"
)

// Partition splits reviews into the one written by userID, if any, and the
// rest in their original order.
func Partition(list []model.Review, userID string) (*model.Review, []model.Review) {
	var mine *model.Review
	others := make([]model.Review, 0, len(list))
	for i := range list {
		if mine == nil && userID != "" && list[i].UserId == userID {
			review := list[i]
			mine = &review
			continue
		}
		others = append(others, list[i])
	}
	return mine, others
}

type ReviewAPI interface {
	ProductReviews(ctx context.Context, productId string) ([]model.Review, error)
	CreateReview(ctx context.Context, body model.ReviewRequest) (model.Review, error)
	UpdateReview(ctx context.Context, id string, body model.ReviewRequest) (model.Review, error)
}

type Board struct {
	api       ReviewAPI
	notify    toast.Notifier
	productID string
	userID    string

	mu     sync.RWMutex
	mine   *model.Review
	others []model.Review
}

func NewBoard(reviewAPI ReviewAPI, notify toast.Notifier, productID, userID string) *Board {
	return &Board{api: reviewAPI, notify: notify, productID: productID, userID: userID}
}

func (b *Board) Load(ctx context.Context) error {
	list, err := b.api.ProductReviews(ctx, b.productID)
	if err != nil {
		b.notify.Error(api.Message(err))
		return err
	}
	mine, others := Partition(list, b.userID)
	b.mu.Lock()
	b.mine, b.others = mine, others
	b.mu.Unlock()
	return nil
}

func (b *Board) Mine() (model.Review, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.mine == nil {
		return model.Review{}, false
	}
	return *b.mine, true
}

func (b *Board) Others() []model.Review {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Review(nil), b.others...)
}

// Submit edits the caller's review in place when one exists and creates it
// otherwise, then reloads the board.
func (b *Board) Submit(ctx context.Context, rating int, comment string) error {
	body := model.ReviewRequest{ProductId: b.productID, Rating: rating, Comment: comment}
	var err error
	if mine, ok := b.Mine(); ok {
		_, err = b.api.UpdateReview(ctx, mine.Id, body)
	} else {
		_, err = b.api.CreateReview(ctx, body)
	}
	if err != nil {
		b.notify.Error(api.Message(err))
		return err
	}
	b.notify.Success("Thanks for your review")
	return b.Load(ctx)
}
