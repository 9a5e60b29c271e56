package constants

// Settlement classes of a loan.
const (
	SettleSettled        = "stl"
	SettleUnsettled      = "ustl"  // matured, balance outstanding
	SettleUnsettledEarly = "ustl1" // not yet matured, balance outstanding
	SettleTotal          = "tot"
)

// Query reason codes. A reason text may map to several codes joined by ','.
const (
	ReasonCardApproval = "xs"
	ReasonPostLoan     = "dg"
	ReasonLoanApproval = "dk"
	ReasonPreLoan      = "dq"
	ReasonSelf         = "bc"
	ReasonSelfOnline   = "bcn"
	ReasonOther        = "ot"
	ReasonTotal        = "tot"
)

// Account states as printed in the report.
const (
	StateNormal      = "正常"
	StateInactive    = "未激活"
	StateClosed      = "销户"
	StateSettledText = "结清"
)

// Loan item codes.
const (
	ItemHouse    = "hs"
	ItemBank     = "bank"
	ItemNonBank  = "nbank"
	ItemBusiness = "mngm"
	ItemConsume  = "cnsm"
	ItemStudent  = "stdt"
	ItemCar      = "car"
	ItemFarmer   = "frmr"
	ItemOther    = "othr"
	ItemTotal    = "tot"
)

// CurrencyRMB marks an RMB card account.
const CurrencyRMB = "人民币"
