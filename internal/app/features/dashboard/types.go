// internal/app/features/dashboard/types.go
package dashboard

import (
	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
)

type upcomingVM struct {
	ID           string
	Title        string
	DateText     string
	Weekday      string
	Time         string
	Congregation string
	Status       status.Status
	Today        bool
}

type latestVM struct {
	ID         string
	TypeLabel  string
	DateText   string
	AmountText string
	Status     status.CollectionStatus
}

type dashboardData struct {
	viewdata.BaseVM

	MonthName string

	Upcoming      []upcomingVM
	UpcomingError bool

	Summary      collectionstore.Summary
	ReceivedText string
	PendingText  string
	SummaryError bool

	Latest      []latestVM
	LatestError bool

	Congregations int64
	Ministries    int64
	Events        int64
	Users         int64
}

type chartsResponse struct {
	ByType  []collectionstore.TypeTotal  `json:"porTipo"`
	ByMonth []collectionstore.MonthTotal `json:"porMes"`
}
