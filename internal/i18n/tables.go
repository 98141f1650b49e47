package i18n

var tables = map[Language]map[Key]string{
	English: {
		AppTitle:             "FamilySpend",
		SelectProfile:        "Select Profile:",
		TotalSpent:           "Total Spent",
		Categories:           "Categories",
		PeriodWeek:           "Week",
		PeriodMonth:          "Month",
		PeriodYear:           "Year",
		CategoryBreakdown:    "Category Breakdown",
		WeeklyTrend:          "Weekly Trend",
		TopCategories:        "Top 3 Categories",
		FamilyOverview:       "View Family Overview",
		AddExpense:           "Add Expense",
		Profile:              "Profile",
		Category:             "Category",
		Amount:               "Amount (₹)",
		Date:                 "Date",
		Note:                 "Note (Optional)",
		SaveExpense:          "Save Expense",
		Reports:              "Reports",
		FilterProfile:        "Filter by Profile",
		StartDate:            "Start Date",
		EndDate:              "End Date",
		ApplyFilters:         "Apply Filters",
		ExportCSV:            "📥 Export to CSV",
		Settings:             "Settings",
		Appearance:           "Appearance",
		DarkMode:             "Dark Mode",
		LanguageLabel:        "Language",
		CurrentLanguage:      "Current Language",
		About:                "About",
		AboutDesc:            "A simple, beautiful expense tracker for families",
		Dashboard:            "Dashboard",
		Add:                  "Add",
		TotalFamilySpending:  "Total Family Spending",
		SpendingByMember:     "Spending by Member",
		TopFamilyCategories:  "Top Family Categories",
		ExpenseAdded:         "Expense added successfully!",
		ExpenseDeleted:       "Expense deleted",
		ErrorOccurred:        "An error occurred",
		NoExpenses:           "No expenses found",
		Loading:              "Loading...",
		CreditCards:          "Credit Cards",
		Cards:                "Cards",
		AddCard:              "Add New Card",
		AddNewCard:           "Add New Credit Card",
		CardProfile:          "Profile",
		CardName:             "Card Name",
		CardLastFour:         "Last 4 Digits",
		CreditLimit:          "Credit Limit",
		BillingDay:           "Billing Day",
		CardColor:            "Card Color",
		SaveCard:             "Save Card",
		Cancel:               "Cancel",
		CreditCard:           "Credit Card",
		Spent:                "Spent",
		Available:            "Available",
		Utilization:          "Utilization",
		RecentTransactions:   "Recent Transactions",
		DeleteCard:           "Delete Card",
		CardAdded:            "Card added successfully!",
		CardDeleted:          "Card deleted successfully!",
		CardUpdated:          "Card updated successfully!",
		EditCard:             "Edit Card",
		AllProfiles:          "All Profiles",
		SelectCategory:       "Select Category",
		SelectProfileOption:  "Select Profile",
		CashNoCard:           "Cash / No Card",
		NoData:               "No data yet",
		NoProfileSelected:    "Select a profile to see the dashboard",
		BillingOfMonth:       "Billing: {day} of month",
		BillingCycle:         "Billing Cycle",
		ConfirmDeleteExpense: "Delete this expense?",
		ConfirmDeleteCard:    "Are you sure you want to delete this card? Expenses linked to this card will not be deleted.",
		InvalidInput:         "Please check the form values",
		Close:                "Close",
		Reload:               "Refresh",
		LanguageName:         "English",
	},
	Telugu: {
		AppTitle:             "ఫ్యామిలీస్పెండ్",
		SelectProfile:        "ప్రొఫైల్ ఎంచుకోండి:",
		TotalSpent:           "మొత్తం ఖర్చు",
		Categories:           "వర్గాలు",
		PeriodWeek:           "వారం",
		PeriodMonth:          "నెల",
		PeriodYear:           "సంవత్సరం",
		CategoryBreakdown:    "వర్గం వారీగా",
		WeeklyTrend:          "వారపు ధోరణి",
		TopCategories:        "టాప్ 3 వర్గాలు",
		FamilyOverview:       "కుటుంబ సమీక్ష చూడండి",
		AddExpense:           "ఖర్చు జోడించండి",
		Profile:              "ప్రొఫైల్",
		Category:             "వర్గం",
		Amount:               "మొత్తం (₹)",
		Date:                 "తేదీ",
		Note:                 "గమనిక (ఐచ్ఛికం)",
		SaveExpense:          "ఖర్చు సేవ్ చేయండి",
		Reports:              "నివేదికలు",
		FilterProfile:        "ప్రొఫైల్ ద్వారా ఫిల్టర్",
		StartDate:            "ప్రారంభ తేదీ",
		EndDate:              "ముగింపు తేదీ",
		ApplyFilters:         "ఫిల్టర్లు వర్తింపజేయండి",
		ExportCSV:            "📥 CSV కి ఎగుమతి చేయండి",
		Settings:             "సెట్టింగ్‌లు",
		Appearance:           "రూపం",
		DarkMode:             "డార్క్ మోడ్",
		LanguageLabel:        "భాష",
		CurrentLanguage:      "ప్రస్తుత భాష",
		About:                "గురించి",
		AboutDesc:            "కుటుంబాల కోసం సరళమైన, అందమైన ఖర్చు ట్రాకర్",
		Dashboard:            "డాష్‌బోర్డ్",
		Add:                  "జోడించు",
		TotalFamilySpending:  "మొత్తం కుటుంబ ఖర్చు",
		SpendingByMember:     "సభ్యుల వారీగా ఖర్చు",
		TopFamilyCategories:  "టాప్ కుటుంబ వర్గాలు",
		ExpenseAdded:         "ఖర్చు విజయవంతంగా జోడించబడింది!",
		ExpenseDeleted:       "ఖర్చు తొలగించబడింది",
		ErrorOccurred:        "లోపం సంభవించింది",
		NoExpenses:           "ఖర్చులు కనుగొనబడలేదు",
		Loading:              "లోడ్ అవుతోంది...",
		CreditCards:          "క్రెడిట్ కార్డులు",
		Cards:                "కార్డులు",
		AddCard:              "కొత్త కార్డ్ జోడించండి",
		AddNewCard:           "కొత్త క్రెడిట్ కార్డ్ జోడించండి",
		CardProfile:          "ప్రొఫైల్",
		CardName:             "కార్డ్ పేరు",
		CardLastFour:         "చివరి 4 అంకెలు",
		CreditLimit:          "క్రెడిట్ పరిమితి",
		BillingDay:           "బిల్లింగ్ రోజు",
		CardColor:            "కార్డ్ రంగు",
		SaveCard:             "కార్డ్ సేవ్ చేయండి",
		Cancel:               "రద్దు చేయండి",
		CreditCard:           "క్రెడిట్ కార్డ్",
		Spent:                "ఖర్చు",
		Available:            "అందుబాటులో",
		Utilization:          "వినియోగం",
		RecentTransactions:   "ఇటీవలి లావాదేవీలు",
		DeleteCard:           "కార్డ్ తొలగించండి",
		CardAdded:            "కార్డ్ విజయవంతంగా జోడించబడింది!",
		CardDeleted:          "కార్డ్ విజయవంతంగా తొలగించబడింది!",
		CardUpdated:          "కార్డ్ విజయవంతంగా నవీకరించబడింది!",
		EditCard:             "కార్డ్ సవరించండి",
		AllProfiles:          "అన్ని ప్రొఫైల్‌లు",
		SelectCategory:       "వర్గాన్ని ఎంచుకోండి",
		SelectProfileOption:  "ప్రొఫైల్ ఎంచుకోండి",
		CashNoCard:           "నగదు / కార్డ్ లేదు",
		NoData:               "ఇంకా డేటా లేదు",
		NoProfileSelected:    "డాష్‌బోర్డ్ చూడటానికి ప్రొఫైల్ ఎంచుకోండి",
		BillingOfMonth:       "బిల్లింగ్: ప్రతి నెల {day}వ తేదీ",
		BillingCycle:         "బిల్లింగ్ చక్రం",
		ConfirmDeleteExpense: "ఈ ఖర్చును తొలగించాలా?",
		ConfirmDeleteCard:    "ఈ కార్డ్‌ను తొలగించాలనుకుంటున్నారా? ఈ కార్డ్‌కు లింక్ చేసిన ఖర్చులు తొలగించబడవు.",
		InvalidInput:         "దయచేసి ఫారమ్ విలువలను తనిఖీ చేయండి",
		Close:                "మూసివేయండి",
		Reload:               "రిఫ్రెష్ చేయండి",
		LanguageName:         "తెలుగు",
	},
}
