package doctest

import "github.com/joseph-ayodele/pboc-bom/internal/document"

// Statements of the sample report accounts.
const (
	HouseLoanStatement    = "1.2012年11月23日中国工商银行发放的500,000元（人民币）个人住房贷款，业务号X201211230001，抵押担保，240期，按月归还，2032年11月23日到期。截至2019年09月30日，"
	ConsumerLoanStatement = "2.2015年03月10日招联消费金融有限公司发放的30,000元（人民币）个人消费贷款，业务号X201503100002，信用/免担保，12期，按月归还，2016年03月10日到期。截至2016年03月10日，该笔贷款已结清。"
	RMBCardStatement      = "1.2011年11月23日中国建设银行发放的贷记卡（人民币账户），业务号X201111230003，授信额度50,000元，共享授信额度50,000元，信用/免担保。截至2019年09月14日，"
	USDCardStatement      = "2.2018年05月01日招商银行发放的贷记卡（美元账户），业务号X201805010004，授信额度折合人民币10,000元，共享授信额度折合人民币10,000元，信用/免担保。截至2019年09月14日，账户状态为“未激活”。"
	StandardCardStatement = "1.2012年03月05日中国银行发放的准贷记卡（人民币账户），业务号X201203050005，授信额度0元，共享授信额度0元，信用/免担保。截至2019年09月14日，"
)

// SampleReport is a complete narrative report: two loans (an open house
// loan with overdue history and a settled consumer loan), two credit cards,
// one standard credit card, a housing fund record and four queries.
func SampleReport() []document.Block {
	var b []document.Block
	add := func(blocks ...document.Block) { b = append(b, blocks...) }

	add(
		Text("个人信用报告"),
		Tbl(
			Row("被查询者姓名", "被查询者证件类型", "被查询者证件号码", "查询操作员", "查询原因"),
			Row("张三", "身份证", "110101198001010011", "操作员A", "贷后管理"),
		),
	)

	add(
		Text("一 个人基本信息"),
		Text("身份信息"),
		Tbl(
			Row("性别", "出生日期", "婚姻状况", "手机号码", "单位电话", "住宅电话", "学历", "学位"),
			Row("男性", "1980.01.01", "已婚", "13800000000", "--", "--", "大学本科", "学士"),
			Spans([]int{3, 5}, "通讯地址", "户籍地址"),
			Spans([]int{3, 5}, "北京市朝阳区", "北京市海淀区"),
		),
		Text("配偶信息"),
		Tbl(
			Row("姓名", "证件类型", "证件号码", "工作单位", "联系电话"),
			Row("李四", "身份证", "110101198201010022", "北京某医院", "13900000000"),
		),
		Text("居住信息"),
		Tbl(
			Row("编号", "居住地址", "居住状况", "信息更新日期"),
			Row("1", "北京市朝阳区某小区", "按揭", "2019.01.01"),
			Row("2", "北京市海淀区某街道", "租房", "2015.06.01"),
		),
		Text("职业信息"),
		Tbl(
			Row("编号", "工作单位", "工作单位", "工作单位", "工作单位", "单位地址", "单位地址"),
			Row("1", "北京某公司", "北京某公司", "北京某公司", "北京某公司", "北京市朝阳区", "北京市朝阳区"),
			Row("编号", "职业", "行业", "职务", "职称", "进入本单位年份", "信息更新日期"),
			Row("1", "专业技术人员", "信息技术", "一般员工", "中级", "2010", "2019.01.01"),
		),
	)

	add(
		Text("二 信息概要"),
		Text("（一）信用提示"),
		Tbl(
			Row("个人住房贷款笔数", "个人商用房（包括商住两用）贷款笔数", "其他贷款笔数", "首笔贷款发放月份", "贷记卡账户数",
				"首张贷记卡发卡月份", "准贷记卡账户数", "首张准贷记卡发卡月份", "本人声明数目", "异议标注数目"),
			Row("1", "0", "1", "2012.11", "2", "2011.11", "1", "2012.03", "0", "0"),
		),
		Text("（二）逾期及违约信息概要"),
		Tbl(
			Spans([]int{2, 2, 2}, "呆账信息汇总", "资产处置信息汇总", "保证人代偿信息汇总"),
			Row("笔数", "余额", "笔数", "余额", "笔数", "余额"),
			Row("0", "0", "0", "0", "0", "0"),
		),
		Text("逾期（透支）信息汇总"),
		Tbl(
			Spread(4, "贷款逾期", "贷记卡逾期", "准贷记卡60天以上透支"),
			Row("笔数", "月份数", "单月最高逾期总额", "最长逾期月数", "账户数", "月份数", "单月最高逾期总额", "最长逾期月数",
				"账户数", "月份数", "单月最高透支余额", "最长透支月数"),
			Row("1", "2", "3,000", "2", "1", "2", "1,200", "3", "0", "0", "0", "0"),
		),
		Text("（三）授信及负债信息概要"),
		Text("未结清贷款信息汇总"),
		Tbl(
			Row("贷款法人机构数", "贷款机构数", "笔数", "合同总额", "余额", "最近6个月平均应还款"),
			Row("1", "1", "1", "500,000", "320,000", "3,800"),
		),
		Text("未销户贷记卡信息汇总"),
		Tbl(
			Row("发卡法人机构数", "发卡机构数", "账户数", "授信总额", "单家行最高授信额", "单家行最低授信额", "已用额度", "最近6个月平均使用额度"),
			Row("2", "2", "2", "60,000", "50,000", "10,000", "12,000", "15,000"),
		),
		Text("未销户准贷记卡信息汇总"),
		Tbl(
			Row("发卡法人机构数", "发卡机构数", "账户数", "授信总额", "单家行最高授信额", "单家行最低授信额", "透支余额", "最近6个月平均透支余额"),
			Row("1", "1", "1", "0", "0", "0", "0", "0"),
		),
	)

	add(
		Text("三 信贷交易信息明细"),
		Text("（一）贷款"),
		Text(HouseLoanStatement),
		Tbl(
			Spread(3, "账户状态", "五级分类", "本金余额", "剩余还款期数", "本月应还款", "应还款日", "本月实还款", "最近一次还款日期"),
			Spread(3, "正常", "正常", "320,000", "158", "3,800", "2019.09.30", "3,800", "2019.09.20"),
			Spread(4, "当前逾期期数", "当前逾期金额", "逾期31-60天未还本金", "逾期61－90天未还本金", "逾期91－180天未还本金", "逾期180天以上未还本金"),
			Spread(4, "0", "0", "0", "0", "0", "0"),
			Spread(24, "2017年10月-2019年09月的还款记录"),
			Chars("NNNNNNNNNNNNNNNNNNNNN1NN"),
			Spread(24, "2014年10月-2019年09月的逾期记录"),
			Spread(4, "逾期月份", "逾期持续月数", "逾期金额", "逾期月份", "逾期持续月数", "逾期金额"),
			Spread(4, "2018.03", "2", "3,000", "2018.02", "1", "1,500"),
			Spans([]int{4, 4, 4, 4, 8}, "特殊交易类型", "发生日期", "变更月数", "发生金额", "明细记录"),
			Spans([]int{4, 4, 4, 4, 8}, "提前还款（部分）", "2016.05.20", "0", "100,000", "提前还款"),
		),
		Text(ConsumerLoanStatement),
		Tbl(
			Spread(3, "账户状态", "五级分类", "本金余额", "剩余还款期数", "本月应还款", "应还款日", "本月实还款", "最近一次还款日期"),
			Spread(3, "结清", "正常", "0", "0", "0", "2016.03.10", "0", "2016.03.10"),
		),
		Text("（二）贷记卡"),
		Text(RMBCardStatement),
		Tbl(
			Spans([]int{4, 4, 8, 4, 4}, "账户状态", "已用额度", "最近6个月平均使用额度", "最大使用额度", "本月应还款"),
			Spans([]int{4, 4, 8, 4, 4}, "正常", "12,000", "15,000", "30,000", "1,200"),
			Spans([]int{4, 4, 8, 4, 4}, "账单日", "本月实还款", "最近一次还款日期", "当前逾期期数", "当前逾期金额"),
			Spans([]int{4, 4, 8, 4, 4}, "2019.09.05", "1,200", "2019.09.01", "0", "0"),
			Spread(24, "2017年10月-2019年09月的还款记录"),
			Chars("NNNNNNNNNNNNNNNNNNNN2NNN"),
			Spread(24, "2014年10月-2019年09月的逾期记录"),
			Spread(4, "逾期月份", "逾期持续月数", "逾期金额", "逾期月份", "逾期持续月数", "逾期金额"),
			Spread(4, "2017.02", "3", "560", "2017.01", "2", "350"),
		),
		Text(USDCardStatement),
		Tbl(
			Spans([]int{4, 4, 8, 4, 4}, "账户状态", "已用额度", "最近6个月平均使用额度", "最大使用额度", "本月应还款"),
			Spans([]int{4, 4, 8, 4, 4}, "未激活", "0", "0", "0", "0"),
		),
		Text("（三）准贷记卡"),
		Text(StandardCardStatement),
		Tbl(
			Spans([]int{2, 2, 4, 3, 3, 3, 3, 4}, "账户状态", "透支余额", "最近6个月平均透支余额", "最大透支余额", "账单日", "本月实还款", "最近一次还款日期", "透支180天以上未付余额"),
			Spans([]int{2, 2, 4, 3, 3, 3, 3, 4}, "正常", "0", "0", "0", "2019.09.05", "0", "2019.08.05", "0"),
		),
		Text("（五）对外贷款担保信息"),
		Tbl(
			Row("编号", "担保贷款发放机构", "担保贷款合同金额", "担保贷款发放日期", "担保贷款到期日期", "担保金额", "担保贷款本金余额", "担保贷款五级分类", "结算日期"),
			Row("1", "中国农业银行", "200,000", "2016.01.01", "2021.01.01", "200,000", "80,000", "正常", "2019.09.01"),
		),
	)

	add(
		Text("四 公共信息明细"),
		Text("住房公积金参缴记录"),
		Tbl(
			Row("编号", "参缴地", "参缴日期", "初缴月份", "缴至月份", "缴费状态", "月缴存额", "个人缴存比例", "单位缴存比例", ""),
			Row("1", "北京", "2010.07.01", "2010.07", "2019.08", "缴交", "2,000", "12%", "12%", ""),
			Row("编号", "缴费单位", "", "", "", "", "", "", "", "信息更新日期"),
			Row("1", "北京某公司", "", "", "", "", "", "", "", "2019.09.01"),
		),
	)

	add(
		Text("五 查询记录"),
		Text("查询记录汇总"),
		Tbl(
			Spans([]int{2, 3, 3}, "最近1个月内的查询机构数", "最近1个月内的查询次数", "最近2年内的查询次数"),
			Row("贷款审批", "信用卡审批", "贷款审批", "信用卡审批", "本人查询", "贷后管理", "担保资格审查", "特约商户实名审查"),
			Row("1", "1", "1", "1", "0", "1", "0", "0"),
		),
		Text("信贷审批查询记录明细"),
		Tbl(
			Row("编号", "查询日期", "查询操作员", "查询原因"),
			Row("1", "2019.09.01", "中国工商银行/op1", "信用卡审批"),
			Row("2", "2019.08.15", "招联消费金融有限公司/op2", "贷款审批"),
			Row("3", "2019.03.02", "中国建设银行/op3", "贷后管理"),
			Row("4", "2018.01.10", "本人/本人", "本人查询（互联网个人信用信息服务平台）"),
		),
		Text("报告说明"),
	)
	return b
}
