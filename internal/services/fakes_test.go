package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/warthug/points-backend/internal/models"
	"github.com/warthug/points-backend/internal/repositories"
)

// In-memory repository fakes backing the service tests. They store pointers,
// so a service mutating a fetched document mutates the store; Update is still
// required where the fakes are asked to fail it.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
	// incrementFailFor makes IncrementEarnings fail for the given user,
	// simulating a mid-cascade crash.
	incrementFailFor map[primitive.ObjectID]bool
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:            make(map[primitive.ObjectID]*models.User),
		incrementFailFor: make(map[primitive.ObjectID]bool),
	}
	for _, u := range users {
		r.add(u)
	}
	return r
}

func (r *fakeUserRepo) add(u *models.User) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	found := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found = append(found, u)
		}
	}
	return found, nil
}

func (r *fakeUserRepo) FindByTelegramID(ctx context.Context, telegramUserID string) (*models.User, error) {
	for _, u := range r.users {
		if u.TelegramUserID == telegramUserID {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	for _, u := range r.users {
		if u.WalletAddress == walletAddress {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) IncrementEarnings(ctx context.Context, id primitive.ObjectID, amount int) error {
	if r.incrementFailFor[id] {
		return errors.New("simulated write failure")
	}
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.AddEarnings(amount)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) TotalStats(ctx context.Context, dailyCutoff, onlineCutoff time.Time) (*models.TotalStats, error) {
	stats := &models.TotalStats{TotalUsers: int64(len(r.users))}
	for _, u := range r.users {
		stats.TotalMined += int64(u.TotalEarnings)
		if u.LastClaimTime.After(dailyCutoff) {
			stats.DailyUsers++
		}
		if u.LastActive.After(onlineCutoff) {
			stats.OnlineUsers++
		}
	}
	return stats, nil
}

func (r *fakeUserRepo) FindWallets(ctx context.Context) ([]*models.WalletEntry, error) {
	wallets := []*models.WalletEntry{}
	for _, u := range r.users {
		if u.WalletAddress != "" {
			wallets = append(wallets, &models.WalletEntry{
				TelegramUserID: u.TelegramUserID,
				Username:       u.Username,
				WalletAddress:  u.WalletAddress,
			})
		}
	}
	return wallets, nil
}

type fakeDailyPointRepo struct {
	records map[primitive.ObjectID]*models.DailyPoint // keyed by user ID
}

var _ repositories.DailyPointRepository = (*fakeDailyPointRepo)(nil)

func newFakeDailyPointRepo() *fakeDailyPointRepo {
	return &fakeDailyPointRepo{records: make(map[primitive.ObjectID]*models.DailyPoint)}
}

func (r *fakeDailyPointRepo) Create(ctx context.Context, dp *models.DailyPoint) error {
	if dp.ID.IsZero() {
		dp.ID = primitive.NewObjectID()
	}
	r.records[dp.UserID] = dp
	return nil
}

func (r *fakeDailyPointRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.DailyPoint, error) {
	dp, ok := r.records[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return dp, nil
}

func (r *fakeDailyPointRepo) Update(ctx context.Context, dp *models.DailyPoint) error {
	if _, ok := r.records[dp.UserID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.records[dp.UserID] = dp
	return nil
}

type fakeStakeRepo struct {
	stakes map[primitive.ObjectID]*models.Stake
}

var _ repositories.StakeRepository = (*fakeStakeRepo)(nil)

func newFakeStakeRepo() *fakeStakeRepo {
	return &fakeStakeRepo{stakes: make(map[primitive.ObjectID]*models.Stake)}
}

func (r *fakeStakeRepo) Create(ctx context.Context, stake *models.Stake) error {
	if stake.ID.IsZero() {
		stake.ID = primitive.NewObjectID()
	}
	r.stakes[stake.ID] = stake
	return nil
}

func (r *fakeStakeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Stake, error) {
	s, ok := r.stakes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return s, nil
}

func (r *fakeStakeRepo) FindActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Stake, error) {
	active := []*models.Stake{}
	for _, s := range r.stakes {
		if s.UserID == userID && s.Status == models.StakeActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (r *fakeStakeRepo) FindClaimableByUserID(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]*models.Stake, error) {
	claimable := []*models.Stake{}
	for _, s := range r.stakes {
		if s.UserID == userID && s.Status == models.StakeActive && s.IsMatured(now) {
			claimable = append(claimable, s)
		}
	}
	return claimable, nil
}

func (r *fakeStakeRepo) Update(ctx context.Context, stake *models.Stake) error {
	if _, ok := r.stakes[stake.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.stakes[stake.ID] = stake
	return nil
}

type fakePromoRepo struct {
	promos map[string]*models.PromoCode // keyed by code
}

var _ repositories.PromoCodeRepository = (*fakePromoRepo)(nil)

func newFakePromoRepo(promos ...*models.PromoCode) *fakePromoRepo {
	r := &fakePromoRepo{promos: make(map[string]*models.PromoCode)}
	for _, p := range promos {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.promos[p.Code] = p
	}
	return r
}

func (r *fakePromoRepo) Create(ctx context.Context, promo *models.PromoCode) error {
	if promo.ID.IsZero() {
		promo.ID = primitive.NewObjectID()
	}
	r.promos[promo.Code] = promo
	return nil
}

func (r *fakePromoRepo) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	p, ok := r.promos[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

type fakeTaskRepo struct {
	tasks map[primitive.ObjectID]*models.Task
}

var _ repositories.TaskRepository = (*fakeTaskRepo)(nil)

func newFakeTaskRepo(tasks ...*models.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[primitive.ObjectID]*models.Task)}
	for _, t := range tasks {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) CreateMany(ctx context.Context, tasks []*models.Task) error {
	for _, t := range tasks {
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return t, nil
}

func (r *fakeTaskRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Task, error) {
	found := make([]*models.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			found = append(found, t)
		}
	}
	return found, nil
}

func (r *fakeTaskRepo) FindActive(ctx context.Context) ([]*models.Task, error) {
	active := []*models.Task{}
	for _, t := range r.tasks {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context) ([]*models.Task, error) {
	all := make([]*models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		all = append(all, t)
	}
	return all, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.tasks[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.tasks, id)
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*models.AdminUser // keyed by email
}

var _ repositories.AdminUserRepository = (*fakeAdminRepo)(nil)

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.AdminUser)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, adminUser *models.AdminUser) error {
	if adminUser.ID.IsZero() {
		adminUser.ID = primitive.NewObjectID()
	}
	r.admins[adminUser.Email] = adminUser
	return nil
}

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	a, ok := r.admins[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return a, nil
}

type fakeCascadeRepo struct {
	cascades map[primitive.ObjectID]*models.ReferralCascade // keyed by new user ID
	// failUpdate makes watermark advancement fail.
	failUpdate bool
}

var _ repositories.ReferralCascadeRepository = (*fakeCascadeRepo)(nil)

func newFakeCascadeRepo() *fakeCascadeRepo {
	return &fakeCascadeRepo{cascades: make(map[primitive.ObjectID]*models.ReferralCascade)}
}

func (r *fakeCascadeRepo) Create(ctx context.Context, cascade *models.ReferralCascade) error {
	if cascade.ID.IsZero() {
		cascade.ID = primitive.NewObjectID()
	}
	r.cascades[cascade.NewUserID] = cascade
	return nil
}

func (r *fakeCascadeRepo) FindByNewUserID(ctx context.Context, newUserID primitive.ObjectID) (*models.ReferralCascade, error) {
	c, ok := r.cascades[newUserID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (r *fakeCascadeRepo) Update(ctx context.Context, cascade *models.ReferralCascade) error {
	if r.failUpdate {
		return errors.New("simulated write failure")
	}
	if _, ok := r.cascades[cascade.NewUserID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.cascades[cascade.NewUserID] = cascade
	return nil
}
