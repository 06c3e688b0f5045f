package quota

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"immotrust/internal/pkg/response"
)

// RespondError writes the envelope for quota failures and reports whether err
// was one. Limit denials carry the numbers needed for an upgrade prompt.
func RespondError(c *gin.Context, err error) bool {
	var limitErr *LimitError
	switch {
	case errors.As(err, &limitErr):
		code := "PLAN_LIMIT_REACHED"
		if errors.Is(err, ErrFeatureNotAvailable) {
			code = "FEATURE_NOT_AVAILABLE"
		}
		response.ErrorWithDetails(c, http.StatusForbidden, code, limitErr.Error(), gin.H{
			"resource":   limitErr.Resource,
			"current":    limitErr.Current,
			"limit":      limitErr.Limit,
			"plan":       limitErr.Plan,
			"upgrade_to": limitErr.UpgradeTo,
		})
	case errors.Is(err, ErrComplianceBlocked):
		response.Error(c, http.StatusForbidden, "COMPLIANCE_BLOCKED", err.Error())
	case errors.Is(err, ErrEvaluation):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "EVALUATION_FAILED", "Unable to evaluate plan limits, retry later")
	default:
		return false
	}
	return true
}
