package usecases_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"keephy.backend/internal/domain/entities"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entities.Business, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Business), args.Bool(1), args.Error(2)
}

func (m *MockBusinessRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Business, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Business], error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.Business]), args.Error(1)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *entities.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock FranchiseRepository
type MockFranchiseRepository struct {
	mock.Mock
}

func (m *MockFranchiseRepository) Create(ctx context.Context, franchise *entities.Franchise) error {
	return m.Called(ctx, franchise).Error(0)
}

func (m *MockFranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Franchise), args.Error(1)
}

func (m *MockFranchiseRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	args := m.Called(ctx, businessID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.Franchise]), args.Error(1)
}

func (m *MockFranchiseRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Franchise], error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.Franchise]), args.Error(1)
}

func (m *MockFranchiseRepository) Update(ctx context.Context, franchise *entities.Franchise) error {
	return m.Called(ctx, franchise).Error(0)
}

func (m *MockFranchiseRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) ListIDsByBusiness(ctx context.Context, businessIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	args := m.Called(ctx, businessIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]uuid.UUID), args.Error(1)
}

// Mock FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *entities.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Form), args.Error(1)
}

func (m *MockFormRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Form, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Form), args.Error(1)
}

func (m *MockFormRepository) ListByUser(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[*entities.Form], error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.Form]), args.Error(1)
}

func (m *MockFormRepository) Update(ctx context.Context, form *entities.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *MockFormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) CreateBatch(ctx context.Context, attachments []*entities.FormAttachment) error {
	return m.Called(ctx, attachments).Error(0)
}

func (m *MockAttachmentRepository) ListByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID) ([]entities.FormAttachment, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FormAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByOwners(ctx context.Context, ownerType entities.OwnerType, ownerIDs []uuid.UUID) (map[uuid.UUID][]entities.FormAttachment, error) {
	args := m.Called(ctx, ownerType, ownerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]entities.FormAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListFormsByOwner(ctx context.Context, ownerType entities.OwnerType, ownerID uuid.UUID, p utils.PaginationParams) (*entities.ListResult[entities.AttachedForm], error) {
	args := m.Called(ctx, ownerType, ownerID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[entities.AttachedForm]), args.Error(1)
}

func (m *MockAttachmentRepository) GetByCode(ctx context.Context, code string) (*entities.FormAttachment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FormAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) Activate(ctx context.Context, ownerType entities.OwnerType, ownerID, formID uuid.UUID) error {
	return m.Called(ctx, ownerType, ownerID, formID).Error(0)
}

// Mock SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *entities.FormSubmission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filter entities.SubmissionFilter, p utils.PaginationParams) (*entities.ListResult[*entities.FormSubmission], error) {
	args := m.Called(ctx, filter, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.FormSubmission]), args.Error(1)
}

// Mock PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *entities.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context, p utils.PaginationParams) (*entities.ListResult[*entities.Plan], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ListResult[*entities.Plan]), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *entities.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetByRemoteID(ctx context.Context, userID uuid.UUID, subscriptionID string) (*entities.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Subscription, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockSubscriptionRepository) DeactivateFree(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock BillingGateway
type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) CreateCustomer(ctx context.Context, params gateways.CustomerParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) AttachSource(ctx context.Context, customerID, source string) error {
	return m.Called(ctx, customerID, source).Error(0)
}

func (m *MockBillingGateway) CreateSubscription(ctx context.Context, params gateways.SubscriptionParams) (*gateways.RemoteSubscription, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.RemoteSubscription), args.Error(1)
}

func (m *MockBillingGateway) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) error {
	return m.Called(ctx, subscriptionID, cancel).Error(0)
}

func (m *MockBillingGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return m.Called(ctx, subscriptionID).Error(0)
}

func (m *MockBillingGateway) CreateProduct(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) UpdateProduct(ctx context.Context, productID, name string) error {
	return m.Called(ctx, productID, name).Error(0)
}

func (m *MockBillingGateway) CreatePrice(ctx context.Context, params gateways.PriceParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) DeactivatePrice(ctx context.Context, priceID string) error {
	return m.Called(ctx, priceID).Error(0)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, email gateways.Email) error {
	return m.Called(ctx, email).Error(0)
}

// Mock Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ExchangeEmail(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// Mock LogoStore
type MockLogoStore struct {
	mock.Mock
}

func (m *MockLogoStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockLogoStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// fixedCodes hands out predetermined attachment codes
type fixedCodes struct {
	codes []string
}

func (f *fixedCodes) GenerateBatch(n int) []string {
	out := f.codes[:n]
	f.codes = f.codes[n:]
	return out
}
