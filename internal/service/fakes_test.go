package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/google/uuid"
)

// In-memory repository fakes. They enforce the same uniqueness rules the
// database indexes do, so the services see the identical error kinds.

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Compare(hashed, plain string) bool { return hashed == "hashed:"+plain }

// --- permissions ---

type fakePermissionRepo struct {
	seq   uint
	items map[uint]*model.Permission
	order []uint
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{items: map[uint]*model.Permission{}}
}

func (r *fakePermissionRepo) Create(_ context.Context, p *model.Permission) error {
	for _, existing := range r.items {
		if existing.Name == p.Name {
			return fmt.Errorf("permissions name: %w", apperr.ErrConflict)
		}
	}
	r.seq++
	p.ID = r.seq
	p.CreatedAt = time.Now()
	cp := *p
	r.items[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePermissionRepo) GetByID(_ context.Context, id uint) (*model.Permission, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePermissionRepo) List(_ context.Context) ([]model.Permission, error) {
	out := make([]model.Permission, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.items[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePermissionRepo) Update(_ context.Context, p *model.Permission) error {
	if _, ok := r.items[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	for id, existing := range r.items {
		if id != p.ID && existing.Name == p.Name {
			return fmt.Errorf("permissions name: %w", apperr.ErrConflict)
		}
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePermissionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// --- roles ---

type fakeRoleRepo struct {
	seq   uint
	items map[uint]*model.Role
	order []uint
	asgn  *fakeAssignmentRepo
}

func newFakeRoleRepo(asgn *fakeAssignmentRepo) *fakeRoleRepo {
	return &fakeRoleRepo{items: map[uint]*model.Role{}, asgn: asgn}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	for _, existing := range r.items {
		if existing.Name == role.Name {
			return fmt.Errorf("roles name: %w", apperr.ErrConflict)
		}
	}
	r.seq++
	role.ID = r.seq
	cp := *role
	r.items[role.ID] = &cp
	r.order = append(r.order, role.ID)
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id uint) (*model.Role, error) {
	role, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) GetByIDWithPermissions(ctx context.Context, id uint) (*model.Role, error) {
	role, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	perms, err := r.asgn.ListPermissionsForRole(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return role, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(r.order))
	for _, id := range r.order {
		if role, ok := r.items[id]; ok {
			out = append(out, *role)
		}
	}
	return out, nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *model.Role) error {
	if _, ok := r.items[role.ID]; !ok {
		return apperr.ErrNotFound
	}
	for id, existing := range r.items {
		if id != role.ID && existing.Name == role.Name {
			return fmt.Errorf("roles name: %w", apperr.ErrConflict)
		}
	}
	cp := *role
	r.items[role.ID] = &cp
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// --- assignments ---

type fakeAssignmentRepo struct {
	seq   uint
	rows  []model.RolePermission
	perms *fakePermissionRepo
}

func newFakeAssignmentRepo(perms *fakePermissionRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{perms: perms}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *model.RolePermission) error {
	for _, row := range r.rows {
		if row.RoleID == assignment.RoleID && row.PermissionID == assignment.PermissionID {
			return fmt.Errorf("role_permissions pair: %w", apperr.ErrConflict)
		}
	}
	r.seq++
	assignment.ID = r.seq
	r.rows = append(r.rows, *assignment)
	return nil
}

func (r *fakeAssignmentRepo) ListPermissionsForRole(_ context.Context, roleID uint) ([]model.Permission, error) {
	var out []model.Permission
	for _, row := range r.rows {
		if row.RoleID != roleID {
			continue
		}
		if p, ok := r.perms.items[row.PermissionID]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) DeleteByRole(_ context.Context, roleID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.RoleID != roleID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeAssignmentRepo) DeleteByPermission(_ context.Context, permissionID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.PermissionID != permissionID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

// --- accounts ---

type fakeAccountRepo struct {
	items map[string]*model.Account
	order []string
	roles *fakeRoleRepo
}

func newFakeAccountRepo(roles *fakeRoleRepo) *fakeAccountRepo {
	return &fakeAccountRepo{items: map[string]*model.Account{}, roles: roles}
}

func (r *fakeAccountRepo) withRole(a model.Account) model.Account {
	if role, ok := r.roles.items[a.RoleID]; ok {
		a.Role = *role
	}
	return a
}

func (r *fakeAccountRepo) Create(_ context.Context, account *model.Account) error {
	if _, ok := r.items[account.AccountID]; ok {
		return fmt.Errorf("accounts pkey: %w", apperr.ErrConflict)
	}
	for _, existing := range r.items {
		if existing.Email == account.Email {
			return fmt.Errorf("accounts email: %w", apperr.ErrConflict)
		}
	}
	account.CreatedAt = time.Now()
	cp := *account
	r.items[account.AccountID] = &cp
	r.order = append(r.order, account.AccountID)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := r.withRole(*a)
	return &cp, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range r.items {
		if a.Email == email {
			cp := r.withRole(*a)
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeAccountRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *fakeAccountRepo) List(_ context.Context, page, limit int) ([]model.Account, int64, error) {
	total := int64(len(r.order))
	start := (page - 1) * limit
	if start >= len(r.order) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	out := make([]model.Account, 0, end-start)
	for _, id := range r.order[start:end] {
		out = append(out, r.withRole(*r.items[id]))
	}
	return out, total, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *model.Account) error {
	if _, ok := r.items[account.AccountID]; !ok {
		return apperr.ErrNotFound
	}
	for id, existing := range r.items {
		if id != account.AccountID && existing.Email == account.Email {
			return fmt.Errorf("accounts email: %w", apperr.ErrConflict)
		}
	}
	cp := *account
	r.items[account.AccountID] = &cp
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	a, ok := r.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	a.Password = passwordHash
	return nil
}

func (r *fakeAccountRepo) CountByRole(_ context.Context, roleID uint) (int64, error) {
	var n int64
	for _, a := range r.items {
		if a.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// --- sessions ---

type fakeSessionRepo struct {
	items    map[string]*model.Session
	accounts *fakeAccountRepo
}

func newFakeSessionRepo(accounts *fakeAccountRepo) *fakeSessionRepo {
	return &fakeSessionRepo{items: map[string]*model.Session{}, accounts: accounts}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) error {
	if _, ok := r.items[session.Token]; ok {
		return fmt.Errorf("sessions token: %w", apperr.ErrConflict)
	}
	session.ID = uuid.New()
	cp := *session
	r.items[session.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*model.Session, error) {
	s, ok := r.items[token]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *s
	if a, ok := r.accounts.items[s.AccountID]; ok {
		cp.Account = r.accounts.withRole(*a)
	}
	return &cp, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.items, token)
	return nil
}

func (r *fakeSessionRepo) DeleteByAccount(_ context.Context, accountID string, keepToken string) error {
	for token, s := range r.items {
		if s.AccountID == accountID && token != keepToken {
			delete(r.items, token)
		}
	}
	return nil
}

// --- audit ---

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	total := int64(len(r.entries))
	out := make([]model.AuditLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, *r.entries[i])
	}
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// --- fixture ---

type fixture struct {
	perms    *fakePermissionRepo
	roles    *fakeRoleRepo
	asgn     *fakeAssignmentRepo
	accounts *fakeAccountRepo
	sessions *fakeSessionRepo
	audit    *fakeAuditRepo

	permissionService PermissionService
	roleService       RoleService
	accountService    AccountService
	authService       AuthService
	auditService      AuditService
}

func newFixture() *fixture {
	perms := newFakePermissionRepo()
	asgn := newFakeAssignmentRepo(perms)
	roles := newFakeRoleRepo(asgn)
	accounts := newFakeAccountRepo(roles)
	sessions := newFakeSessionRepo(accounts)
	audit := &fakeAuditRepo{}
	tx := fakeTxManager{}
	hasher := fakeHasher{}

	return &fixture{
		perms:    perms,
		roles:    roles,
		asgn:     asgn,
		accounts: accounts,
		sessions: sessions,
		audit:    audit,

		permissionService: NewPermissionService(perms, asgn, audit, tx, nil),
		roleService:       NewRoleService(roles, perms, asgn, accounts, audit, tx, nil),
		accountService:    NewAccountService(accounts, roles, sessions, audit, tx, hasher, nil),
		authService:       NewAuthService(accounts, sessions, audit, tx, hasher),
		auditService:      NewAuditService(audit),
	}
}

// seedRole inserts a role directly, bypassing the service layer.
func (f *fixture) seedRole(name string) model.Role {
	role := model.Role{Name: name, Status: model.StatusActive}
	_ = f.roles.Create(context.Background(), &role)
	return role
}

// seedAccount inserts an account with a fake-hashed password.
func (f *fixture) seedAccount(id, email, plainPassword string, roleID uint) model.Account {
	account := model.Account{
		AccountID:   id,
		UserName:    "Tester " + id,
		Password:    "hashed:" + plainPassword,
		RoleID:      roleID,
		BirthDay:    time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
		Address:     "12 Long St",
		Email:       email,
		PhoneNumber: "0123456789",
		Gender:      model.GenderFemale,
		Status:      model.StatusActive,
		IsActive:    true,
	}
	_ = f.accounts.Create(context.Background(), &account)
	return account
}
