package classification

// defaultGroups is the layout produced when the flat components/ directory
// was split into category folders.
var defaultGroups = map[CategoryFolder][]ComponentName{
	"work": {
		"Dashboard",
		"TodayWork",
		"WorkOrderDetail",
		"WorkCompleteForm",
		"WorkCompleteDetail",
		"WorkProcessFlow",
		"WorkItemList",
		"WorkDirectionRow",
		"WorkOrderCard",
		"WorkCancelModal",
		"WorkResultSignalList",
		"ASWorkDetails",
		"InstallWorkDetails",
		"TerminationWorkDetails",
		"SuspensionWorkDetails",
		"RelocationWorkDetails",
		"ProductChangeWorkDetails",
		"ReceptionInfo",
		"ContractInfo",
		"SafetyCheckList",
		"SafetyCheckModal",
		"WorkItemCard",
	},
	"equipment": {
		"EquipmentManagement",
		"EquipmentManagementMenu",
		"EquipmentModelChangeModal",
		"EquipmentInstallation",
		"EquipmentAssignment",
		"EquipmentMovement",
		"EquipmentRecovery",
		"EquipmentStatusView",
		"SignalCheck",
		"SignalHistoryList",
	},
	"customer": {
		"CustomerManagement",
		"CustomerInfo",
		"CustomerInfoManagement",
	},
	"common": {
		"Header",
		"BottomNavigation",
		"SideDrawer",
		"Toast",
		"ErrorBoundary",
		"ErrorMessage",
		"LoadingSpinner",
		"BaseModal",
		"VipBadge",
		"VipCounter",
		"DliveLogo",
	},
	"layout": {
		"MainMenu",
		"ComingSoon",
		"Login",
		"ScrollableTabMenu",
		"SlidingTabMenu",
	},
	"other": {
		"OtherManagement",
		"AutomationBot",
		"LGUConstructionRequest",
		"LGUNetworkFault",
		"WorkerAdjustment",
	},
	"modal": {
		"InstallInfoModal",
		"IntegrationHistoryModal",
	},
}

// Default returns the built-in table.
func Default() *Table {
	t, err := New(defaultGroups)
	if err != nil {
		panic(err)
	}
	return t
}
