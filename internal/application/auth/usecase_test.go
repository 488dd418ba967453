package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Bodega-api/pkg/jwt"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "bodega-api-test",
	})
	return uc, repo
}

func TestRegisterUser_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	uc, repo := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "caja@demo.local",
		Password:  "secreta123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCajero, resp.Role, "sin rol explícito se asigna cajero")
	assert.Equal(t, "active", resp.Status)

	stored, _ := repo.FindByEmail("caja@demo.local")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash,
		"el password nunca se guarda en claro")
}

func TestRegisterUser_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	uc, _ := newAuthUC()

	in := dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "caja@demo.local",
		Password:  "secreta123",
	}
	_, err := uc.RegisterUser(in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "x@demo.local",
		Password:  "secreta123",
		Role:      "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConClaimsDelUsuario(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "bodega@demo.local",
		Password:  "secreta123",
		Role:      entity.RoleBodeguero,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "bodega@demo.local", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, companyID, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "caja@demo.local",
		Password:  "secreta123",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "caja@demo.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@demo.local", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "caja@demo.local",
		Password:  "secreta123",
	})
	require.NoError(t, err)
	repo.users[registered.ID].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "caja@demo.local", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
