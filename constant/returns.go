package constant

type ReturnStatus string

const (
	ReturnStatusRequested                  ReturnStatus = "requested"
	ReturnStatusReplacementSent            ReturnStatus = "replacement_sent"
	ReturnStatusApprovedRefund             ReturnStatus = "approved_refund"
	ReturnStatusRejected                   ReturnStatus = "rejected"
	ReturnStatusDefectiveReceived          ReturnStatus = "defective_received"
	ReturnStatusCompletedApproved          ReturnStatus = "completed_approved"
	ReturnStatusCompletedRejectedByVendor  ReturnStatus = "completed_rejected_by_vendor"
	ReturnStatusConvertedToSale            ReturnStatus = "converted_to_sale"
	ReturnStatusReturnedToStock            ReturnStatus = "returned_to_stock"
)

type ReturnDecision string

const (
	ReturnDecisionApproveReplacement ReturnDecision = "approve_replacement"
	ReturnDecisionApproveRefund      ReturnDecision = "approve_refund"
	ReturnDecisionReject             ReturnDecision = "reject"
)

type ReturnResolution string

const (
	ReturnResolutionPay           ReturnResolution = "pay"
	ReturnResolutionReturnProduct ReturnResolution = "return_product"
)

type WarrantyPeriod string

const (
	WarrantyNone    WarrantyPeriod = "NONE"
	WarrantyDays7   WarrantyPeriod = "DAYS_7"
	WarrantyDays30  WarrantyPeriod = "DAYS_30"
	WarrantyDays90  WarrantyPeriod = "DAYS_90"
	WarrantyMonths6 WarrantyPeriod = "MONTHS_6"
)

// WarrantyDays maps a warranty period to its window in days after the order
// date. NONE is not in the map: it means no expiry, a return is always
// eligible.
var WarrantyDays = map[WarrantyPeriod]int{
	WarrantyDays7:   7,
	WarrantyDays30:  30,
	WarrantyDays90:  90,
	WarrantyMonths6: 180,
}
