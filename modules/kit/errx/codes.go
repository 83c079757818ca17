package errx

// 跨包统一的系统类错误码。规则拒绝类的错误码由各领域包自己定义。
const (
	// CodeInternal 兜底的内部错误。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 存储或依赖不可用（文件系统、MySQL、MongoDB）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout actor 请求或阻塞等待超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeInvalidInput 玩家输入越界或格式错误。
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeCorrupt 存档/地图内容损坏或不完整。
	CodeCorrupt Code = "CORRUPT_DATA"
)

var (
	ErrInternal     = NewSys(CodeInternal, "内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "存储不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrInvalidInput = NewBiz(CodeInvalidInput, "输入无效")
	ErrCorrupt      = NewSys(CodeCorrupt, "数据损坏")
)
