package seller

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/handcart/backend/internal/models"
)

type notifierCall struct {
	userID uuid.UUID
	status models.SellerStatus
	reason string
}

type recordingNotifier struct {
	calls []notifierCall
}

func (n *recordingNotifier) SellerStatusChanged(userID uuid.UUID, status models.SellerStatus, reason string) {
	n.calls = append(n.calls, notifierCall{userID: userID, status: status, reason: reason})
}

func newTestAdminService(db *gorm.DB) (*AdminService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewAdminService(db, notifier), notifier
}

func TestReviewApprove(t *testing.T) {
	db := setupTestDB(t)
	service, notifier := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)

	user := createTestUser(t, db, models.SellerStatusPending)
	storeName := "Ama's Fabrics"
	require.NoError(t, db.Model(user).Update("store_name", &storeName).Error)

	updated, err := service.Review(user.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SellerStatusVerified, updated.SellerStatus)
	require.NotNil(t, updated.VerifiedAt)
	assert.Nil(t, updated.RejectionReason)
	require.NotNil(t, updated.StoreSlug)
	assert.Equal(t, "ama-s-fabrics", *updated.StoreSlug)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, user.ID, notifier.calls[0].userID)
	assert.Equal(t, models.SellerStatusVerified, notifier.calls[0].status)
}

func TestReviewApproveSlugFallsBackToUsername(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)
	user := createTestUser(t, db, models.SellerStatusPending)

	updated, err := service.Review(user.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)

	require.NotNil(t, updated.StoreSlug)
	assert.NotEmpty(t, *updated.StoreSlug)
}

func TestReviewApproveSlugCollision(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)

	storeName := "Corner Shop"
	first := createTestUser(t, db, models.SellerStatusPending)
	require.NoError(t, db.Model(first).Update("store_name", &storeName).Error)
	second := createTestUser(t, db, models.SellerStatusPending)
	require.NoError(t, db.Model(second).Update("store_name", &storeName).Error)

	approvedFirst, err := service.Review(first.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)
	approvedSecond, err := service.Review(second.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)

	assert.Equal(t, "corner-shop", *approvedFirst.StoreSlug)
	assert.Equal(t, "corner-shop-2", *approvedSecond.StoreSlug)
}

func TestReviewRejectRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	service, notifier := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)
	user := createTestUser(t, db, models.SellerStatusPending)

	_, err := service.Review(user.ID, ReviewActionReject, "", admin.ID)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.SellerStatusPending, reloadUser(t, db, user.ID).SellerStatus)
	assert.Empty(t, notifier.calls)
}

func TestReviewReject(t *testing.T) {
	db := setupTestDB(t)
	service, notifier := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)
	user := createTestUser(t, db, models.SellerStatusPending)

	updated, err := service.Review(user.ID, ReviewActionReject, "identity document expired", admin.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SellerStatusRejected, updated.SellerStatus)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "identity document expired", *updated.RejectionReason)

	var history models.SellerStatusHistory
	require.NoError(t, db.First(&history, "user_id = ?", user.ID).Error)
	require.NotNil(t, history.Reason)
	assert.Equal(t, "identity document expired", *history.Reason)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "identity document expired", notifier.calls[0].reason)
}

func TestReviewUnknownAction(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)
	user := createTestUser(t, db, models.SellerStatusPending)

	_, err := service.Review(user.ID, "escalate", "", uuid.New())

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReviewNonPendingApplication(t *testing.T) {
	db := setupTestDB(t)
	service, notifier := newTestAdminService(db)
	user := createTestUser(t, db, models.SellerStatusVerified)

	_, err := service.Review(user.ID, ReviewActionApprove, "", uuid.New())

	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Empty(t, notifier.calls)
}

func TestSuspensionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	service, notifier := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)
	user := createTestUser(t, db, models.SellerStatusPending)

	approved, err := service.Review(user.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)
	verifiedAt := approved.VerifiedAt
	require.NotNil(t, verifiedAt)

	suspended, err := service.SetSuspension(user.ID, true, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SellerStatusSuspended, suspended.SellerStatus)
	require.NotNil(t, suspended.VerifiedAt)
	assert.Equal(t, verifiedAt.Unix(), suspended.VerifiedAt.Unix())

	restored, err := service.SetSuspension(user.ID, false, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SellerStatusVerified, restored.SellerStatus)

	assert.Len(t, notifier.calls, 3)
	assert.Equal(t, int64(3), historyCount(t, db, user.ID))
}

func TestSuspendNonVerified(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)
	user := createTestUser(t, db, models.SellerStatusPending)

	_, err := service.SetSuspension(user.ID, true, uuid.New())

	var transitionErr *IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestFullLifecycle(t *testing.T) {
	db := setupTestDB(t)
	applicantService := NewService(db)
	adminService, _ := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)

	user := createTestUser(t, db, models.SellerStatusNone)
	addDocument(t, db, user.ID, models.DocumentTypeIdentityProof)

	_, err := applicantService.Apply(user.ID, ApplyInput{BusinessType: models.BusinessTypeIndividual})
	require.NoError(t, err)

	_, err = adminService.Review(user.ID, ReviewActionReject, "blurry photo", admin.ID)
	require.NoError(t, err)

	reapplied, err := applicantService.Apply(user.ID, ApplyInput{BusinessType: models.BusinessTypeIndividual})
	require.NoError(t, err)
	assert.Nil(t, reapplied.RejectionReason)

	approved, err := adminService.Review(user.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SellerStatusVerified, approved.SellerStatus)
	require.NotNil(t, approved.VerifiedAt)

	assert.Equal(t, int64(4), historyCount(t, db, user.ID))
}

func TestListApplicationsDefaultsExcludeNonApplicants(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	createTestUser(t, db, models.SellerStatusNone)
	createTestUser(t, db, models.SellerStatusSuspended)
	pending := createTestUser(t, db, models.SellerStatusPending)
	verified := createTestUser(t, db, models.SellerStatusVerified)
	rejected := createTestUser(t, db, models.SellerStatusRejected)

	views, pagination, err := service.ListApplications(ApplicationFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), pagination.Total)
	ids := make(map[uuid.UUID]bool)
	for _, v := range views {
		ids[v.ID] = true
	}
	assert.True(t, ids[pending.ID])
	assert.True(t, ids[verified.ID])
	assert.True(t, ids[rejected.ID])
}

func TestListApplicationsStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	createTestUser(t, db, models.SellerStatusVerified)
	pending := createTestUser(t, db, models.SellerStatusPending)

	views, _, err := service.ListApplications(ApplicationFilter{
		Statuses: []models.SellerStatus{models.SellerStatusPending},
	})
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Equal(t, pending.ID, views[0].ID)
}

func TestListApplicationsInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	_, _, err := service.ListApplications(ApplicationFilter{
		Statuses: []models.SellerStatus{"in_review"},
	})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestListApplicationsPagination(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	for i := 0; i < 3; i++ {
		createTestUser(t, db, models.SellerStatusPending)
	}

	views, pagination, err := service.ListApplications(ApplicationFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)

	views, _, err = service.ListApplications(ApplicationFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestListApplicationsIncludesDocuments(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	user := createTestUser(t, db, models.SellerStatusPending)
	addDocument(t, db, user.ID, models.DocumentTypeIdentityProof)
	addDocument(t, db, user.ID, models.DocumentTypeAddressProof)

	views, _, err := service.ListApplications(ApplicationFilter{})
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Len(t, views[0].VerificationDocuments, 2)
}

func TestGetApplicationDetail(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)
	admin := createTestUser(t, db, models.SellerStatusNone)

	user := createTestUser(t, db, models.SellerStatusPending)
	addDocument(t, db, user.ID, models.DocumentTypeIdentityProof)

	_, err := service.Review(user.ID, ReviewActionReject, "expired document", admin.ID)
	require.NoError(t, err)

	detail, err := service.GetApplication(user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, detail.ID)
	assert.Len(t, detail.VerificationDocuments, 1)
	require.Len(t, detail.History, 1)
	assert.Equal(t, models.SellerStatusPending, detail.History[0].PreviousStatus)
	assert.Equal(t, models.SellerStatusRejected, detail.History[0].NewStatus)
}

func TestGetApplicationUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	_, err := service.GetApplication(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestAdminService(db)

	createTestUser(t, db, models.SellerStatusNone)
	createTestUser(t, db, models.SellerStatusPending)
	createTestUser(t, db, models.SellerStatusPending)
	createTestUser(t, db, models.SellerStatusVerified)
	createTestUser(t, db, models.SellerStatusSuspended)

	counts, err := service.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts.Pending)
	assert.Equal(t, int64(1), counts.Verified)
	assert.Equal(t, int64(0), counts.Rejected)
	assert.Equal(t, int64(1), counts.Suspended)
}

func TestNilNotifier(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db, nil)
	admin := createTestUser(t, db, models.SellerStatusNone)
	user := createTestUser(t, db, models.SellerStatusPending)

	updated, err := service.Review(user.ID, ReviewActionApprove, "", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SellerStatusVerified, updated.SellerStatus)
}
