package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/internal/testutil"
	"github.com/dantebozzuti27/baseline-video/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProgramTest(t *testing.T) (*testutil.MockProgramService, *testutil.HTTPTestClient) {
	t.Helper()
	svc := new(testutil.MockProgramService)
	h := NewProgramHandler(svc)
	client := newTestClient(t,
		route{method: "POST", path: "/programs/enrollments", handler: h.Enroll},
		route{method: "PATCH", path: "/programs/enrollments/:enrollmentId", handler: h.SetEnrollmentStatus},
		route{method: "POST", path: "/programs/assignments/:assignmentId/complete", handler: h.CompleteAssignment},
		route{method: "POST", path: "/programs/submissions/:submissionId/review", handler: h.ReviewSubmission},
		route{method: "POST", path: "/programs/focuses", handler: h.CreateFocus},
		route{method: "DELETE", path: "/programs/templates/:templateId/assignments/:assignmentId", handler: h.DeleteTemplateAssignment},
		route{method: "DELETE", path: "/programs/media/:mediaId", handler: h.DeleteDrillMedia},
	)
	return svc, client
}

func TestProgramHandler_Enroll_DefaultStart(t *testing.T) {
	svc, client := setupProgramTest(t)
	templateID := uuid.New()
	playerID := uuid.New()

	svc.On("Enroll", mock.Anything, templateID, playerID, time.Time{}).
		Return(&models.Enrollment{ID: uuid.New(), TemplateID: templateID, PlayerUserID: playerID, Status: models.EnrollmentActive}, nil)

	rec := client.POST("/programs/enrollments", dto.EnrollRequest{TemplateID: templateID, PlayerUserID: playerID}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	svc.AssertExpectations(t)
}

func TestProgramHandler_Enroll_Duplicate(t *testing.T) {
	svc, client := setupProgramTest(t)

	svc.On("Enroll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &services.Error{Kind: services.KindInvalidState, Message: "player already enrolled in this program"})

	rec := client.POST("/programs/enrollments", dto.EnrollRequest{TemplateID: uuid.New(), PlayerUserID: uuid.New()}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusConflict)
	testutil.ParseError(t, rec, "invalid_state")
}

func TestProgramHandler_SetEnrollmentStatus(t *testing.T) {
	svc, client := setupProgramTest(t)
	enrollmentID := uuid.New()

	svc.On("SetEnrollmentStatus", mock.Anything, enrollmentID, models.EnrollmentPaused).
		Return(&models.Enrollment{ID: enrollmentID, Status: models.EnrollmentPaused}, nil)

	rec := client.PATCH("/programs/enrollments/"+enrollmentID.String(), dto.SetEnrollmentStatusRequest{Status: "paused"}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusOK)
	svc.AssertExpectations(t)
}

func TestProgramHandler_SetEnrollmentStatus_UnknownStatus(t *testing.T) {
	svc, client := setupProgramTest(t)

	svc.On("SetEnrollmentStatus", mock.Anything, mock.Anything, models.EnrollmentStatus("archived")).
		Return(nil, &services.Error{Kind: services.KindInvalidInput, Message: "unknown enrollment status"})

	rec := client.PATCH("/programs/enrollments/"+uuid.NewString(), dto.SetEnrollmentStatusRequest{Status: "archived"}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.ParseError(t, rec, "invalid_input")
	svc.AssertExpectations(t)
}

func TestProgramHandler_SetEnrollmentStatus_InvalidID(t *testing.T) {
	svc, client := setupProgramTest(t)

	svc.On("Authorize", mock.Anything, []models.Role{models.RoleCoach}).Return(nil)

	rec := client.PATCH("/programs/enrollments/42", dto.SetEnrollmentStatusRequest{Status: "paused"}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	got := testutil.ParseError(t, rec, "invalid_input")
	assert.Equal(t, "invalid enrollmentId", got.Message)
	svc.AssertExpectations(t)
}

func TestProgramHandler_CompleteAssignment_Repeat(t *testing.T) {
	svc, client := setupProgramTest(t)
	assignmentID := uuid.New()

	svc.On("CompleteAssignment", mock.Anything, assignmentID).
		Return(&models.AssignmentCompletion{AssignmentID: assignmentID, AlreadyCompleted: true}, nil)

	rec := client.POST("/programs/assignments/"+assignmentID.String()+"/complete", nil, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.AssignmentCompletion
	testutil.ParseJSON(t, rec, &got)
	assert.True(t, got.AlreadyCompleted)
}

func TestProgramHandler_ReviewSubmission(t *testing.T) {
	svc, client := setupProgramTest(t)
	submissionID := uuid.New()
	note := "good extension"

	svc.On("MarkSubmissionReviewed", mock.Anything, submissionID, &note).
		Return(&models.Submission{ID: submissionID, ReviewNote: &note}, nil)

	rec := client.POST("/programs/submissions/"+submissionID.String()+"/review", dto.ReviewSubmissionRequest{Note: &note}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusOK)
	svc.AssertExpectations(t)
}

func TestProgramHandler_CreateFocus(t *testing.T) {
	svc, client := setupProgramTest(t)
	in := services.FocusInput{Name: "Load", Cues: []string{"sit back"}}

	svc.On("CreateFocus", mock.Anything, in).Return(&models.Focus{ID: uuid.New(), Name: "Load", Cues: []string{"sit back"}}, nil)

	rec := client.POST("/programs/focuses", dto.CreateFocusRequest{Name: "Load", Cues: []string{"sit back"}}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	svc.AssertExpectations(t)
}

func TestProgramHandler_CreateFocus_MissingName(t *testing.T) {
	svc, client := setupProgramTest(t)

	svc.On("CreateFocus", mock.Anything, services.FocusInput{}).
		Return(nil, &services.Error{Kind: services.KindInvalidInput, Message: "name is required"})

	rec := client.POST("/programs/focuses", dto.CreateFocusRequest{}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	got := testutil.ParseError(t, rec, "invalid_input")
	assert.Equal(t, "name is required", got.Message)
	svc.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
}

func TestProgramHandler_DeleteTemplateAssignment(t *testing.T) {
	svc, client := setupProgramTest(t)
	templateID := uuid.New()
	assignmentID := uuid.New()

	svc.On("DeleteTemplateAssignment", mock.Anything, templateID, assignmentID).Return(nil)

	rec := client.DELETE("/programs/templates/"+templateID.String()+"/assignments/"+assignmentID.String(), testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusOK)
	svc.AssertExpectations(t)
}

func TestProgramHandler_DeleteDrillMedia_NotFound(t *testing.T) {
	svc, client := setupProgramTest(t)
	mediaID := uuid.New()

	svc.On("DeleteDrillMedia", mock.Anything, mediaID).
		Return(&services.Error{Kind: services.KindNotFound, Message: "media not found"})

	rec := client.DELETE("/programs/media/"+mediaID.String(), testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.ParseError(t, rec, "not_found")
}
