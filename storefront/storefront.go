// Package storefront composes the client state every screen shares: the
// session, the api client, the cart badge and the notifier.
package storefront

import (
	"context"
	"errors"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/cartcount"
	"plant_nursery/storefront/cartview"
	"plant_nursery/storefront/catalog"
	"plant_nursery/storefront/forms"
	"plant_nursery/storefront/orders"
	"plant_nursery/storefront/session"
	"plant_nursery/storefront/toast"
)

type Config struct {
	BaseURL    string
	BasePath   string
	UPIPayeeID string
	PayeeName  string
}

type Storefront struct {
	Config  Config
	Session *session.Session
	API     *api.Client
	Counter *cartcount.Store
	Notify  toast.Notifier
}

func New(cfg Config, storage session.Storage, notify toast.Notifier, opts ...api.Option) *Storefront {
	s := session.New(storage)
	return &Storefront{
		Config:  cfg,
		Session: s,
		API:     api.New(cfg.BaseURL, cfg.BasePath, s, opts...),
		Counter: cartcount.New(),
		Notify:  notify,
	}
}

// Login validates the form, stores the credentials and sets the badge to
// the server cart total.
func (s *Storefront) Login(ctx context.Context, form forms.Login) error {
	if err := forms.Check(form); err != nil {
		return err
	}
	resp, err := s.API.Login(ctx, form.Email, form.Password)
	if err != nil {
		s.Notify.Error(api.Message(err))
		return err
	}
	if err := s.Session.Save(resp.Token, resp.Role); err != nil {
		return err
	}
	s.Notify.Success("Logged in successfully")
	return s.syncCart(ctx)
}

// Signup runs the first phase, or the second when form carries an OTP.
// It reports whether an OTP must still be entered.
func (s *Storefront) Signup(ctx context.Context, form forms.Signup, otp string) (bool, error) {
	if err := forms.Check(form); err != nil {
		return false, err
	}
	body := form.Request()
	body.OTP = otp
	resp, err := s.API.Signup(ctx, body)
	if err != nil {
		s.Notify.Error(api.Message(err))
		return false, err
	}
	if resp.OTPRequired {
		s.Notify.Success("We sent a code to your email")
		return true, nil
	}
	s.Notify.Success("Account created, please log in")
	return false, nil
}

func (s *Storefront) Logout() error {
	s.Counter.Reset()
	return s.Session.Clear()
}

// Restore runs at startup: without a token the badge is 0, otherwise it is
// read from the server cart.
func (s *Storefront) Restore(ctx context.Context) error {
	if !s.Session.LoggedIn() {
		s.Counter.Reset()
		return nil
	}
	return s.syncCart(ctx)
}

func (s *Storefront) syncCart(ctx context.Context) error {
	cart, err := s.API.Cart(ctx)
	if err != nil {
		return s.handleAuth(err)
	}
	s.Counter.Dispatch(cartcount.Set(cart.Count()))
	return nil
}

// Profile loads the caller's profile; a 401 or 403 logs the user out.
func (s *Storefront) Profile(ctx context.Context) (model.User, error) {
	user, err := s.API.Profile(ctx)
	if err != nil {
		return model.User{}, s.handleAuth(err)
	}
	return user, nil
}

func (s *Storefront) handleAuth(err error) error {
	if !api.IsAuthError(err) {
		s.Notify.Error(api.Message(err))
		return err
	}
	s.Notify.Error("Your session has expired, please log in again")
	if clearErr := s.Logout(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return err
}

func (s *Storefront) Catalog() *catalog.Query {
	return catalog.NewQuery(s.API)
}

func (s *Storefront) AddToCart(ctx context.Context, product model.Products) error {
	err := catalog.AddToCart(ctx, s.API, s.Counter, product)
	switch {
	case err == nil:
		s.Notify.Success(product.Name + " added to cart")
	case errors.Is(err, catalog.ErrOutOfStock):
		s.Notify.Error("Out of Stock")
	default:
		s.Notify.Error(api.Message(err))
	}
	return err
}

func (s *Storefront) CartView() *cartview.View {
	return cartview.New(s.API, s.Counter, s.Notify)
}

func (s *Storefront) Orders() *orders.Book {
	return orders.NewBook(s.API, s.Notify)
}

// LoadSettings takes the UPI payee id from the server; a server without one
// keeps the configured value.
func (s *Storefront) LoadSettings(ctx context.Context) error {
	settings, err := s.API.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.UPIPayeeID != "" {
		s.Config.UPIPayeeID = settings.UPIPayeeID
	}
	return nil
}

// UPILink is the deep link for paying order by QR.
func (s *Storefront) UPILink(order model.Order) string {
	return orders.UPILink(s.Config.UPIPayeeID, s.Config.PayeeName, order)
}
