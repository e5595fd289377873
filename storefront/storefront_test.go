package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/cartcount"
	"plant_nursery/storefront/forms"
	"plant_nursery/storefront/internal/fakeapi"
	"plant_nursery/storefront/session"
	"plant_nursery/storefront/toast"
)

func newStorefront(t *testing.T, backend *fakeapi.Backend) (*Storefront, *toast.Recorder) {
	srv := backend.Start(t)
	toasts := &toast.Recorder{}
	s := New(Config{BaseURL: srv.URL, BasePath: fakeapi.BasePath, UPIPayeeID: "greenleaf@upi", PayeeName: "Greenleaf"},
		session.NewMemoryStorage(), toasts, api.WithHTTPClient(srv.Client()))
	return s, toasts
}

func TestLoginSetsBadgeFromServerCart(t *testing.T) {
	backend := fakeapi.New()
	backend.AddProduct(model.Products{ProductId: "tulsi", Name: "Tulsi", Price: decimal.NewFromInt(120), Stock: 9})
	s, _ := newStorefront(t, backend)
	ctx := context.Background()

	err := s.Login(ctx, forms.Login{Email: "bad", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, forms.FieldErrors(err), "email")
	assert.Zero(t, backend.CountRequests("POST /auth/login"))

	require.NoError(t, s.Login(ctx, forms.Login{Email: "asha@example.com", Password: "secret123"}))
	assert.True(t, s.Session.LoggedIn())
	assert.Equal(t, model.RoleUser, s.Session.Role())

	require.NoError(t, s.AddToCart(ctx, model.Products{ProductId: "tulsi", Name: "Tulsi", Stock: 9}))
	require.NoError(t, s.AddToCart(ctx, model.Products{ProductId: "tulsi", Name: "Tulsi", Stock: 9}))
	assert.Equal(t, 2, s.Counter.Value())

	s.Counter.Reset()
	require.NoError(t, s.Restore(ctx))
	assert.Equal(t, backend.CartCount(), s.Counter.Value())

	require.NoError(t, s.Logout())
	assert.False(t, s.Session.LoggedIn())
	assert.Zero(t, s.Counter.Value())
}

func TestRestoreWithoutToken(t *testing.T) {
	backend := fakeapi.New()
	s, _ := newStorefront(t, backend)
	s.Counter.Dispatch(cartcount.Set(4))

	require.NoError(t, s.Restore(context.Background()))
	assert.Zero(t, s.Counter.Value())
	assert.Empty(t, backend.Requests())
}

func TestProfileAuthFailureForcesLogout(t *testing.T) {
	backend := fakeapi.New()
	s, toasts := newStorefront(t, backend)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, forms.Login{Email: "asha@example.com", Password: "secret123"}))

	user, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	backend.Fail("GET /auth/profile", http.StatusForbidden, "insufficient role")
	_, err = s.Profile(ctx)
	assert.True(t, api.IsAuthError(err))
	assert.False(t, s.Session.LoggedIn())
	last, _ := toasts.Last()
	assert.Equal(t, toast.KindError, last.Kind)
}

func TestSignupWithOTP(t *testing.T) {
	backend := fakeapi.New()
	backend.OTP = "482913"
	s, toasts := newStorefront(t, backend)
	ctx := context.Background()
	form := forms.Signup{Name: "Asha", Email: "asha@example.com", Password: "greenleaf1", Confirm: "greenleaf1"}

	_, err := s.Signup(ctx, forms.Signup{Name: "Asha", Email: "asha@example.com", Password: "weak", Confirm: "weak"})
	require.Error(t, err)
	assert.Contains(t, forms.FieldErrors(err), "password")
	assert.Zero(t, backend.CountRequests("POST /auth/signup"))

	pending, err := s.Signup(ctx, form, "")
	require.NoError(t, err)
	assert.True(t, pending)

	_, err = s.Signup(ctx, form, "000000")
	require.Error(t, err)
	last, _ := toasts.Last()
	assert.Equal(t, "invalid or expired code", last.Text)

	pending, err = s.Signup(ctx, form, "482913")
	require.NoError(t, err)
	assert.False(t, pending)
	last, _ = toasts.Last()
	assert.Equal(t, toast.KindSuccess, last.Kind)
	assert.False(t, s.Session.LoggedIn())
}

func TestAddToCartOutOfStock(t *testing.T) {
	backend := fakeapi.New()
	s, toasts := newStorefront(t, backend)

	require.Error(t, s.AddToCart(context.Background(), model.Products{ProductId: "p", Stock: 0}))
	last, _ := toasts.Last()
	assert.Equal(t, "Out of Stock", last.Text)
	assert.Empty(t, backend.Requests())
}

func TestUPILink(t *testing.T) {
	s, _ := newStorefront(t, fakeapi.New())
	link := s.UPILink(model.Order{OrderNumber: "ORD-1", Total: decimal.NewFromInt(99)})
	assert.Contains(t, link, "pa=greenleaf%40upi")
	assert.Contains(t, link, "am=99.00")
}

func TestLoadSettingsTakesServerPayee(t *testing.T) {
	backend := fakeapi.New()
	s, _ := newStorefront(t, backend)
	ctx := context.Background()

	require.NoError(t, s.LoadSettings(ctx))
	assert.Equal(t, "greenleaf@upi", s.Config.UPIPayeeID)

	backend.SetPayeeID("nursery.store@upi")
	require.NoError(t, s.LoadSettings(ctx))
	assert.Contains(t, s.UPILink(model.Order{OrderNumber: "ORD-2", Total: decimal.NewFromInt(10)}), "pa=nursery.store%40upi")
}
