package dashboard

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/domain/entity"
	domainerror "github.com/automation-insights/backend/internal/domain/error"
)

// Detail link statuses, one per clickable rate column.
const (
	DetailStatusAutomated = "automated"
	DetailStatusSuccess   = "success"
	DetailStatusFailed    = "failed"
)

// BuildDetailURL links to the ticket list of one category, carrying the
// committed date range. Parameters keep a fixed order: category_type,
// status, startDate, endDate.
func BuildDetailURL(id string, categoryType entity.TableView, status, startDate, endDate string) string {
	params := [][2]string{{"category_type", string(categoryType)}}
	if status != "" {
		params = append(params, [2]string{"status", status})
	}
	if startDate != "" {
		params = append(params, [2]string{"startDate", startDate})
	}
	if endDate != "" {
		params = append(params, [2]string{"endDate", endDate})
	}

	query := make([]string, 0, len(params))
	for _, p := range params {
		query = append(query, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return "/home/" + url.PathEscape(id) + "?" + strings.Join(query, "&")
}

// DetailTarget picks the id a row links to: the level-2 id when present,
// otherwise the parent id. ok is false when the row has neither.
func DetailTarget(item entity.BreakdownItem) (id string, categoryType entity.TableView, ok bool) {
	if item.Level2CategoryID != "" {
		return item.Level2CategoryID, entity.TableViewLevel2, true
	}
	if item.ParentCategoryID != "" {
		return item.ParentCategoryID, entity.TableViewParent, true
	}
	return "", "", false
}

// GetDetailURLInput represents the input for building a detail link.
type GetDetailURLInput struct {
	UserID       uuid.UUID
	ID           string
	CategoryType string
	Status       string
}

// GetDetailURLUseCase builds a detail link with the owner's committed dates.
type GetDetailURLUseCase struct {
	requestParams *filters.GetRequestParamsUseCase
}

// NewGetDetailURLUseCase creates a new GetDetailURLUseCase instance.
func NewGetDetailURLUseCase(sessions *filters.Sessions) *GetDetailURLUseCase {
	return &GetDetailURLUseCase{requestParams: filters.NewGetRequestParamsUseCase(sessions)}
}

// Execute validates the link target and returns the URL. An empty category
// type means level2.
func (uc *GetDetailURLUseCase) Execute(ctx context.Context, input GetDetailURLInput) (string, error) {
	if input.ID == "" {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeMissingDetailID,
			domainerror.ErrMissingDetailID.Error(),
			domainerror.ErrMissingDetailID,
		)
	}

	categoryType := entity.TableView(input.CategoryType)
	if categoryType == "" {
		categoryType = entity.TableViewLevel2
	}
	if !categoryType.IsValid() {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidCategoryType,
			domainerror.ErrInvalidCategoryType.Error(),
			domainerror.ErrInvalidCategoryType,
		)
	}

	switch input.Status {
	case "", DetailStatusAutomated, DetailStatusSuccess, DetailStatusFailed:
	default:
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDetailStatus,
			domainerror.ErrInvalidDetailStatus.Error(),
			domainerror.ErrInvalidDetailStatus,
		)
	}

	snapshot, _, err := uc.requestParams.Execute(ctx, input.UserID)
	if err != nil {
		return "", err
	}

	return BuildDetailURL(input.ID, categoryType, input.Status, snapshot.StartDate, snapshot.EndDate), nil
}
