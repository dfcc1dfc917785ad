// Package session mantiene el estado de autenticación del cliente: token persistido y usuario resuelto.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

// State fase de la sesión.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthAPI operaciones remotas de autenticación que usa la sesión.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*dto.AuthResponse, error)
	Signup(ctx context.Context, username, email, password string) (*dto.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

// TokenStore almacenamiento durable del token (una sola clave).
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// ErrEmptyToken el servidor respondió sin token.
var ErrEmptyToken = errors.New("session: respuesta sin token")

// Session estado de autenticación compartido por los comandos del cliente.
type Session struct {
	api   AuthAPI
	store TokenStore
	log   *logger.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *dto.UserResponse
}

// New crea la sesión en estado Loading; llamar Init antes de usarla.
func New(api AuthAPI, store TokenStore, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{api: api, store: store, log: log, state: StateLoading}
}

// Init resuelve el usuario del token guardado. Si falla, borra el token y queda
// Unauthenticated sin reportar error: un token vencido no es un error para el usuario.
func (s *Session) Init(ctx context.Context) {
	s.set(StateLoading, "", nil)

	token, err := s.store.Token()
	if err != nil {
		s.log.Debug().Err(err).Msg("sesión: no se pudo leer el token guardado")
		s.set(StateUnauthenticated, "", nil)
		return
	}
	if token == "" {
		s.set(StateUnauthenticated, "", nil)
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil || user == nil {
		s.log.Debug().Err(err).Msg("sesión: token inválido, se descarta")
		if cErr := s.store.ClearToken(); cErr != nil {
			s.log.Warn().Err(cErr).Msg("sesión: no se pudo borrar el token")
		}
		s.set(StateUnauthenticated, "", nil)
		return
	}
	s.set(StateAuthenticated, token, user)
}

// Login autentica y persiste el token. Los errores remotos se devuelven sin cambios.
func (s *Session) Login(ctx context.Context, username, password string) error {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, resp)
}

// Signup registra la cuenta y queda autenticado con el token devuelto.
func (s *Session) Signup(ctx context.Context, username, email, password string) error {
	resp, err := s.api.Signup(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, resp)
}

// Logout revoca el token remoto si se puede y limpia el estado local siempre.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("sesión: logout remoto falló, se limpia igual")
	}
	if err := s.store.ClearToken(); err != nil {
		s.log.Warn().Err(err).Msg("sesión: no se pudo borrar el token")
	}
	s.set(StateUnauthenticated, "", nil)
}

// adopt persiste el token y resuelve el usuario (de la respuesta o con CurrentUser).
// Si CurrentUser falla el token queda guardado y la sesión sin usuario.
func (s *Session) adopt(ctx context.Context, resp *dto.AuthResponse) error {
	if resp == nil || resp.Token == "" {
		return ErrEmptyToken
	}
	if err := s.store.SaveToken(resp.Token); err != nil {
		return err
	}
	s.set(StateUnauthenticated, resp.Token, nil)

	user := resp.User
	if user == nil {
		u, err := s.api.CurrentUser(ctx)
		if err != nil {
			return err
		}
		user = u
	}
	if user == nil {
		return nil
	}
	s.set(StateAuthenticated, resp.Token, user)
	return nil
}

func (s *Session) set(state State, token string, user *dto.UserResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.token = token
	s.user = user
}

// State fase actual.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User copia del usuario autenticado, o nil.
func (s *Session) User() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token token en uso, o "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated hay token y usuario.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}
