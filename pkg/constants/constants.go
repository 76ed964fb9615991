package constants

//============== ТИПЫ ЗАЯВОК ==============

const (
	RequestTypeAsset       = "ASSET_REQUEST"
	RequestTypeMaintenance = "MAINTENANCE_REQUEST"
	RequestTypeTransfer    = "ASSET_TRANSFER"
	RequestTypeDisposal    = "ASSET_DISPOSAL"
	RequestTypeBreakdown   = "ASSET_BREAKDOWN"
)

//============== СТАТУСЫ ЗАЯВОК ==============

const (
	RequestStatusPending   = "PENDING"
	RequestStatusApproved  = "APPROVED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCompleted = "COMPLETED"
)

// Финальные статусы заявок. Из них переходов нет.
var FinalRequestStatuses = []string{
	RequestStatusRejected,
	RequestStatusCompleted,
}

func IsFinalRequestStatus(code string) bool {
	for _, s := range FinalRequestStatuses {
		if s == code {
			return true
		}
	}
	return false
}

//============== СТАТУСЫ АКТИВОВ ==============

const (
	AssetStatusAvailable   = "AVAILABLE"
	AssetStatusInUse       = "IN_USE"
	AssetStatusMaintenance = "MAINTENANCE"
	AssetStatusRetired     = "RETIRED"
	AssetStatusDisposed    = "DISPOSED"
)

// Терминальные статусы активов: актив в них неактивен (is_active = false).
var TerminalAssetStatuses = []string{
	AssetStatusRetired,
	AssetStatusDisposed,
}

func IsTerminalAssetStatus(code string) bool {
	for _, s := range TerminalAssetStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// AssetTransition описывает целевое состояние актива после выполнения заявки.
type AssetTransition struct {
	Status   string
	IsActive bool
}

// TargetAssetStatus — явная таблица "тип заявки -> целевой статус актива".
// Неизвестный тип заявки отклоняется ДО каких-либо записей в БД.
var TargetAssetStatus = map[string]AssetTransition{
	RequestTypeBreakdown:   {Status: AssetStatusRetired, IsActive: false},
	RequestTypeDisposal:    {Status: AssetStatusDisposed, IsActive: false},
	RequestTypeTransfer:    {Status: AssetStatusInUse, IsActive: true},
	RequestTypeMaintenance: {Status: AssetStatusMaintenance, IsActive: true},
	RequestTypeAsset:       {Status: AssetStatusInUse, IsActive: true},
}

//============== СТАТУСЫ ВЫДАЧ ==============

const (
	LoanStatusActive   = "ACTIVE"
	LoanStatusOverdue  = "OVERDUE"
	LoanStatusReturned = "RETURNED"
)

//============== УВЕДОМЛЕНИЯ ==============

const (
	NotificationTypeRequestExecuted = "REQUEST_EXECUTED"
	NotificationTypeLoanOverdue     = "LOAN_OVERDUE"
	NotificationTypeLoanDueToday    = "LOAN_DUE_TODAY"
	NotificationTypeLoanDueSoon     = "LOAN_DUE_SOON"
	NotificationTypeLicenseExpiring = "LICENSE_EXPIRING"
)

const (
	NotificationPriorityLow    = "LOW"
	NotificationPriorityMedium = "MEDIUM"
	NotificationPriorityHigh   = "HIGH"
)

// Типы связанных сущностей для трассируемости уведомлений.
const (
	RelatedEntityRequest = "REQUEST"
	RelatedEntityAsset   = "ASSET"
	RelatedEntityLoan    = "LOAN"
	RelatedEntityLicense = "LICENSE"
)

//============== CACHE KEYS ==============

// Ключ подавления повторных уведомлений от периодических проверок.
// Формат: notif_suppress:<companyID>:<entityType>:<entityID>:<type> -> "sent"
const CacheKeyNotificationSuppress = "notif_suppress:%d:%s:%d:%s"
