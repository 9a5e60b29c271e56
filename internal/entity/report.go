package entity

// Report is the intermediate entity tree produced from one credit report
// document. Empty strings stand for cells that were blank in the source and
// are omitted when the tree is serialised.
type Report struct {
	BodyStr      string       `json:"body_str"`
	Header       Header       `json:"header"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	SummaryInfo  SummaryInfo  `json:"summary_info"`
	CreditDetail CreditDetail `json:"creditDetail"`
	PublicInfo   PublicInfo   `json:"publicInfo"`
	QueryRecord  QueryRecord  `json:"queryRecord"`
}

type Header struct {
	MessageHeader MessageHeader `json:"messageHeader"`
	QueryReq      *QueryRequest `json:"queryReq,omitempty"`
}

type MessageHeader struct {
	QueryTime        string `json:"queryTime,omitempty"`
	ReportCreateTime string `json:"reportCreateTime,omitempty"`
	ReportSN         string `json:"reportSN,omitempty"`
}

type QueryRequest struct {
	Name        string `json:"name,omitempty"`
	CertType    string `json:"certtype,omitempty"`
	CertNo      string `json:"certno,omitempty"`
	UserCode    string `json:"userCode,omitempty"`
	QueryReason string `json:"queryReason,omitempty"`
}

type PersonalInfo struct {
	Identity     *Identity      `json:"identity,omitempty"`
	Residence    []Residence    `json:"residence,omitempty"`
	Spouse       *Spouse        `json:"spouse,omitempty"`
	Professional []Professional `json:"professional"`
}

type Identity struct {
	Gender            string `json:"gender,omitempty"`
	Birthday          string `json:"birthday,omitempty"`
	MaritalState      string `json:"maritalState,omitempty"`
	Mobile            string `json:"mobile,omitempty"`
	OfficeTelephoneNo string `json:"officeTelephoneNo,omitempty"`
	HomeTelephoneNo   string `json:"homeTelephoneNo,omitempty"`
	EduLevel          string `json:"eduLevel,omitempty"`
	EduDegree         string `json:"eduDegree,omitempty"`
	PostAddress       string `json:"postAddress,omitempty"`
	RegisteredAddress string `json:"registeredAddress,omitempty"`
}

type Residence struct {
	GetTime       string `json:"getTime,omitempty"`
	ResidenceType string `json:"residenceType,omitempty"`
	Address       string `json:"address,omitempty"`
}

type Spouse struct {
	Name        string `json:"name,omitempty"`
	CertType    string `json:"certType,omitempty"`
	CertNo      string `json:"certNo,omitempty"`
	Employer    string `json:"employer,omitempty"`
	TelephoneNo string `json:"telephoneNo,omitempty"`
}

type Professional struct {
	Employer        string `json:"employer,omitempty"`
	EmployerAddress string `json:"employerAddress,omitempty"`
	Occupation      string `json:"occupation,omitempty"`
	Industry        string `json:"industry,omitempty"`
	Duty            string `json:"duty,omitempty"`
	Title           string `json:"title,omitempty"`
	StartYear       string `json:"startYear,omitempty"`
	GetTime         string `json:"getTime,omitempty"`
}

type SummaryInfo struct {
	CreditCue          *CreditCue          `json:"creditCue,omitempty"`
	OverdueAndFellBack *OverdueAndFellBack `json:"overdueAndFellBack,omitempty"`
	ShareAndDebt       ShareAndDebt        `json:"shareAndDebt"`
}

type CreditCue struct {
	PerHouseLoanCount              string `json:"perHouseLoanCount,omitempty"`
	PerBusinessHouseLoanCount      string `json:"perBusinessHouseLoanCount,omitempty"`
	OtherLoanCount                 string `json:"otherLoanCount,omitempty"`
	FirstLoanOpenMonth             string `json:"firstLoanOpenMonth,omitempty"`
	LoanCardCount                  string `json:"loanCardCount,omitempty"`
	FirstLoanCardOpenMonth         string `json:"firstLoanCardOpenMonth,omitempty"`
	StandardLoanCardCount          string `json:"standardLoanCardCount,omitempty"`
	FirstStandardLoanCardOpenMonth string `json:"firstStandardLoanCardOpenMonth,omitempty"`
	AnnounceCount                  string `json:"announceCount,omitempty"`
	DissentCount                   string `json:"dissentCount,omitempty"`
}

type OverdueAndFellBack struct {
	FellBackSummary *FellBackSummary `json:"fellBackSummary,omitempty"`
	OverdueSummary  *OverdueSummary  `json:"overdueSummary,omitempty"`
}

type FellBackSummary struct {
	FellBackDebtSumCount       string `json:"fellBackDebtSumCount,omitempty"`
	FellBackDebtSumBalance     string `json:"fellBackDebtSumBalance,omitempty"`
	AssetDispositionSumCount   string `json:"assetDispositionSumCount,omitempty"`
	AssetDispositionSumBalance string `json:"assetDispositionSumBalance,omitempty"`
	AssureerRepaySumCount      string `json:"assureerRepaySumCount,omitempty"`
	AssureerRepaySumBalance    string `json:"assureerRepaySumBalance,omitempty"`
}

type OverdueSummary struct {
	LoanSumCount                                  string `json:"loanSumCount,omitempty"`
	LoanSumMonths                                 string `json:"loanSumMonths,omitempty"`
	LoanSumHighestOverdueAmountPerMon             string `json:"loanSumHighestOverdueAmountPerMon,omitempty"`
	LoanSumMaxDuration                            string `json:"loanSumMaxDuration,omitempty"`
	LoanCardSumCount                              string `json:"loanCardSumCount,omitempty"`
	LoanCardSumMonths                             string `json:"loanCardSumMonths,omitempty"`
	LoanCardSumHighestOverdueAmountPerMon         string `json:"loanCardSumHighestOverdueAmountPerMon,omitempty"`
	LoanCardSumMaxDuration                        string `json:"loanCardSumMaxDuration,omitempty"`
	StandardLoanCardSumCount                      string `json:"standardLoanCardSumCount,omitempty"`
	StandardLoanCardSumMonths                     string `json:"standardLoanCardSumMonths,omitempty"`
	StandardLoanCardSumHighestOverdueAmountPerMon string `json:"standardLoanCardSumHighestOverdueAmountPerMon,omitempty"`
	StandardLoanCardSumMaxDuration                string `json:"standardLoanCardSumMaxDuration,omitempty"`
}

type ShareAndDebt struct {
	UnPaidLoan                *ShareAndDebtCommon `json:"unPaidLoan,omitempty"`
	UnDestroyLoanCard         *ShareAndDebtCommon `json:"unDestroyLoanCard,omitempty"`
	UnDestroyStandardLoanCard *ShareAndDebtCommon `json:"unDestroyStandardLoanCard,omitempty"`
}

type ShareAndDebtCommon struct {
	FinanceCorpCount          string `json:"financeCorpCount,omitempty"`
	FinanceOrgCount           string `json:"financeOrgCount,omitempty"`
	AccountCount              string `json:"accountCount,omitempty"`
	CreditLimit               string `json:"creditLimit,omitempty"`
	Balance                   string `json:"balance,omitempty"`
	MaxCreditLimitPerOrg      string `json:"maxCreditLimitPerOrg,omitempty"`
	MinCreditLimitPerOrg      string `json:"minCreditLimitPerOrg,omitempty"`
	UsedCreditLimit           string `json:"usedCreditLimit,omitempty"`
	Latest6MonthUsedAvgAmount string `json:"latest6MonthUsedAvgAmount,omitempty"`
}

type CreditDetail struct {
	AssurerRepay     []AssurerRepay `json:"assurerRepay,omitempty"`
	GuaranteeInfo    *GuaranteeInfo `json:"guaranteeInfo,omitempty"`
	Loan             []Account      `json:"loan"`
	LoanCard         []Account      `json:"loanCard"`
	StandardLoanCard []Account      `json:"standardLoanCard"`
}

type AssurerRepay struct {
	Org                            string `json:"org,omitempty"`
	AccumulativeAssurerRepayAmount string `json:"accumulativeAssurerRepayAmount,omitempty"`
	RecentAssurerRepayDate         string `json:"recentAssurerRepayDate,omitempty"`
	RecentRepayDate                string `json:"recentRepayDate,omitempty"`
	Balance                        string `json:"balance,omitempty"`
}

type GuaranteeInfo struct {
	GuaranteeFormat string      `json:"guaranteeFormat,omitempty"`
	Guarantee       []Guarantee `json:"guarantee"`
}

type Guarantee struct {
	OrganName        string `json:"organname,omitempty"`
	ContractMoney    string `json:"contractMoney,omitempty"`
	BeginDate        string `json:"beginDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
	GuaranteeMoney   string `json:"guananteeMoney,omitempty"`
	GuaranteeBalance string `json:"guaranteeBalance,omitempty"`
	Class5State      string `json:"class5State,omitempty"`
	BillingDate      string `json:"billingDate,omitempty"`
}

// Account is one loan, credit card or standard credit card as read from the
// report. Statements carries the narrative head-of-record paragraph.
type Account struct {
	Statements                string          `json:"statements,omitempty"`
	State                     string          `json:"state,omitempty"`
	Class5State               string          `json:"class5State,omitempty"`
	Balance                   string          `json:"balance,omitempty"`
	RemainPaymentCyc          string          `json:"remainPaymentCyc,omitempty"`
	ScheduledPaymentAmount    string          `json:"scheduledPaymentAmount,omitempty"`
	ScheduledPaymentDate      string          `json:"scheduledPaymentDate,omitempty"`
	ActualPaymentAmount       string          `json:"actualPaymentAmount,omitempty"`
	RecentPayDate             string          `json:"recentPayDate,omitempty"`
	UsedCreditLimitAmount     string          `json:"usedCreditLimitAmount,omitempty"`
	Latest6MonthUsedAvgAmount string          `json:"latest6MonthUsedAvgAmount,omitempty"`
	UsedHighestAmount         string          `json:"usedHighestAmount,omitempty"`
	Due180pAmount             string          `json:"due180pAmount,omitempty"`
	CurrOverdueCyc            string          `json:"currOverdueCyc,omitempty"`
	CurrOverdueAmount         string          `json:"currOverdueAmount,omitempty"`
	Overdue31To60Amount       string          `json:"overdue31To60Amount,omitempty"`
	Overdue61To90Amount       string          `json:"overdue61To90Amount,omitempty"`
	Overdue91To180Amount      string          `json:"overdue91To180Amount,omitempty"`
	OverdueOver180Amount      string          `json:"overdueOver180Amount,omitempty"`
	Latest24State             string          `json:"latest24State,omitempty"`
	Latest24Date              string          `json:"latest24Date,omitempty"`
	OverdueRecord             *OverdueRecord  `json:"overdueRecord,omitempty"`
	Specials                  []SpecialRecord `json:"specials,omitempty"`
}

type OverdueRecord struct {
	OverdueRecordDetail []OverdueRecordDetail `json:"overdueRecordDetail"`
}

type OverdueRecordDetail struct {
	Month      string `json:"month,omitempty"`
	LastMonths string `json:"lastMonths,omitempty"`
	Amount     string `json:"amount,omitempty"`
}

type SpecialRecord struct {
	TradeType    string `json:"tradeType,omitempty"`
	Date         string `json:"date,omitempty"`
	ChangeMonths string `json:"changeMonths,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

type PublicInfo struct {
	AccFund []AccFund `json:"accFund"`
}

type AccFund struct {
	Area         string `json:"area,omitempty"`
	RegisterDate string `json:"registerDate,omitempty"`
	FirstMonth   string `json:"firstMonth,omitempty"`
	ToMonth      string `json:"toMonth,omitempty"`
	State        string `json:"state,omitempty"`
	Pay          string `json:"pay,omitempty"`
	OwnPercent   string `json:"ownPercent,omitempty"`
	ComPercent   string `json:"comPercent,omitempty"`
	OrganName    string `json:"organname,omitempty"`
	GetTime      string `json:"getTime,omitempty"`
}

type QueryRecord struct {
	RecordSummary *QueryRecordSummary `json:"recordSummary,omitempty"`
	RecordInfo    []QueryRecordDetail `json:"recordInfo"`
}

type QueryRecordSummary struct {
	LatestMonthQueryorgSumLoanApproval        string `json:"latestMonthQueryorgSumLoanApproval,omitempty"`
	LatestMonthQueryorgSumLoanCardApproval    string `json:"latestMonthQueryorgSumLoanCardApproval,omitempty"`
	LatestMonthQueryRecordSumLoanApproval     string `json:"latestMonthQueryRecordSumLoanApproval,omitempty"`
	LatestMonthQueryRecordSumLoanCardApproval string `json:"latestMonthQueryRecordSumLoanCardApproval,omitempty"`
	LatestMonthQueryRecordSumPersonal         string `json:"latestMonthQueryRecordSumPersonal,omitempty"`
	TwoYearQueryRecordSumCollection           string `json:"twoYearQueryRecordSumCollection,omitempty"`
	TwoYearQueryRecordSumGuarantee            string `json:"twoYearQueryRecordSumGuarantee,omitempty"`
	TwoYearQueryRecordSumSpecial              string `json:"twoYearQueryRecordSumSpecial,omitempty"`
}

type QueryRecordDetail struct {
	QueryReason string `json:"queryReason,omitempty"`
	QueryDate   string `json:"queryDate,omitempty"`
	Querier     string `json:"querier,omitempty"`
}
