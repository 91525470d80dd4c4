package constants

// TrackingNumberPrefix 运单号前缀
const TrackingNumberPrefix = "SW"

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	// TaskContactReceived 新联系咨询通知任务
	TaskContactReceived = "contact:received"
	// TaskPackageStatusEmail 包裹状态变更邮件任务
	TaskPackageStatusEmail = "package:status_email"
)

// 缓存键前缀
const (
	// TrackCacheKeyPrefix 公开查询结果缓存键前缀，后接运单号
	TrackCacheKeyPrefix = "track:"
)

// 管理端列表类型
const (
	AdminListTypePackages = "packages"
	AdminListTypeContacts = "contacts"
)

// 管理端更新动作
const (
	AdminActionCreate         = "create"
	AdminActionUpdate         = "update"
	AdminActionResolveContact = "resolve-contact"
)
