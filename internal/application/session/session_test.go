package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/application/session"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memTokens struct {
	token   string
	cleared int
}

func (m *memTokens) Token() (string, error)   { return m.token, nil }
func (m *memTokens) SaveToken(t string) error { m.token = t; return nil }
func (m *memTokens) ClearToken() error        { m.token = ""; m.cleared++; return nil }

type fakeAPI struct {
	tokens     *memTokens
	validToken string
	user       *dto.UserResponse
	loginResp  *dto.AuthResponse
	loginErr   error
	logoutErr  error
	logouts    int
	userCalls  int
}

func (f *fakeAPI) Login(context.Context, string, string) (*dto.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Signup(context.Context, string, string, string) (*dto.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

// CurrentUser lee el token del store al momento de la llamada, como el cliente real.
func (f *fakeAPI) CurrentUser(context.Context) (*dto.UserResponse, error) {
	f.userCalls++
	if f.tokens.token != f.validToken {
		return nil, errors.New("invalid token")
	}
	return f.user, nil
}

var wanjiku = &dto.UserResponse{ID: "1", Username: "wanjiku", Email: "w@example.com"}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestSession_New_EstadoLoading(t *testing.T) {
	s := session.New(&fakeAPI{tokens: &memTokens{}}, &memTokens{}, nil)
	assert.Equal(t, session.StateLoading, s.State())
	assert.False(t, s.IsAuthenticated())
}

func TestSession_Init_SinToken_Unauthenticated(t *testing.T) {
	store := &memTokens{}
	api := &fakeAPI{tokens: store}
	s := session.New(api, store, nil)
	s.Init(context.Background())
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Equal(t, 0, api.userCalls)
}

func TestSession_Init_TokenValido_Authenticated(t *testing.T) {
	store := &memTokens{token: "good"}
	s := session.New(&fakeAPI{tokens: store, validToken: "good", user: wanjiku}, store, nil)
	s.Init(context.Background())
	assert.Equal(t, session.StateAuthenticated, s.State())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "wanjiku", s.User().Username)
	assert.Equal(t, "good", s.Token())
}

func TestSession_Init_TokenInvalido_SeBorraEnSilencio(t *testing.T) {
	store := &memTokens{token: "stale"}
	s := session.New(&fakeAPI{tokens: store, validToken: "good", user: wanjiku}, store, nil)
	s.Init(context.Background())
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, store.token)
	assert.Equal(t, 1, store.cleared)
}

func TestSession_Login_UsaUsuarioDeLaRespuesta(t *testing.T) {
	store := &memTokens{}
	api := &fakeAPI{tokens: store, loginResp: &dto.AuthResponse{Token: "t1", User: wanjiku}}
	s := session.New(api, store, nil)
	require.NoError(t, s.Login(context.Background(), "wanjiku", "pw"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "t1", store.token)
	assert.Equal(t, 0, api.userCalls)
}

func TestSession_Login_SinUsuarioEnRespuesta_ConsultaCurrentUser(t *testing.T) {
	store := &memTokens{}
	api := &fakeAPI{tokens: store, validToken: "t2", user: wanjiku, loginResp: &dto.AuthResponse{Token: "t2"}}
	s := session.New(api, store, nil)
	require.NoError(t, s.Login(context.Background(), "wanjiku", "pw"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, api.userCalls)
}

func TestSession_Login_ErrorRemoto_SePropagaSinCambios(t *testing.T) {
	boom := errors.New("Incorrect Credentials")
	store := &memTokens{}
	s := session.New(&fakeAPI{tokens: store, loginErr: boom}, store, nil)
	err := s.Login(context.Background(), "x", "y")
	assert.Same(t, boom, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, store.token)
}

func TestSession_Signup_RespuestaSinToken(t *testing.T) {
	store := &memTokens{}
	s := session.New(&fakeAPI{tokens: store, loginResp: &dto.AuthResponse{}}, store, nil)
	assert.ErrorIs(t, s.Signup(context.Background(), "a", "b", "c"), session.ErrEmptyToken)
}

func TestSession_Logout_FalloRemotoIgualLimpia(t *testing.T) {
	store := &memTokens{token: "good"}
	api := &fakeAPI{tokens: store, validToken: "good", user: wanjiku, logoutErr: errors.New("offline")}
	s := session.New(api, store, nil)
	s.Init(context.Background())
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())
	assert.Equal(t, 1, api.logouts)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, store.token)
}
