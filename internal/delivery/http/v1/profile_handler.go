package v1

import (
	"net/http"
	"time"

	"go-autofiller-backend/internal/domain"
	"go-autofiller-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase, extraMiddleware ...gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC}

	handlers := append(extraMiddleware, handler.SaveProfile)
	r.POST("/save-profile", handlers...)
}

// saveProfileResponse is the exact success shape the extension depends on.
type saveProfileResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Timestamp    string              `json:"timestamp"`
	ProfileID    int64               `json:"profile_id"`
	Action       string              `json:"action"`
	DataReceived domain.DataReceived `json:"data_received"`
	RequestID    string              `json:"request_id,omitempty"`
}

// SaveProfile godoc
// @Summary      Save applicant profile
// @Description  Persist the submitted profile. Updates the existing profile when the email matches a stored one, creates a new profile otherwise.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        submission  body      domain.ProfileSubmission  true  "Profile submission"
// @Success      200  {object}  v1.saveProfileResponse
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/save-profile [post]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var submission domain.ProfileSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	result, err := h.profileUC.SaveProfile(c.Request.Context(), &submission)
	if err != nil {
		c.Error(err)
		return
	}

	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(http.StatusOK, saveProfileResponse{
		Success:      true,
		Message:      "Profile " + result.Action + " successfully",
		Timestamp:    time.Now().Format(time.RFC3339),
		ProfileID:    result.ProfileID,
		Action:       result.Action,
		DataReceived: result.DataReceived,
		RequestID:    idStr,
	})
}
