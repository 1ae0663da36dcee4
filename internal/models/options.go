package models

// Option sets offered by the registration forms. Values are stored verbatim.
var (
	Areas = []string{
		"墨田区押上エリア", "墨田区錦糸町エリア", "墨田区両国エリア", "墨田区向島エリア",
		"江東区豊洲エリア", "江東区有明エリア", "江東区門前仲町エリア", "江東区亀戸エリア", "江東区大島エリア",
		"江戸川区西葛西エリア", "江戸川区葛西エリア", "江戸川区船堀エリア", "江戸川区小岩エリア", "江戸川区平井エリア",
	}

	AgeGroups = []string{"〜50代", "60代", "70代", "80代以上"}

	Genders = []string{"男性", "女性"}

	// NYHAClasses is the four-level heart-failure severity scale.
	NYHAClasses = []string{"Ⅰ", "Ⅱ", "Ⅲ", "Ⅳ"}

	// CareLevels is ordered from no certification to the highest care need.
	CareLevels = []string{"なし", "要支援1", "要支援2", "要介護1", "要介護2", "要介護3", "要介護4", "要介護5"}

	Services = []string{"訪問診療", "訪問看護", "訪問リハビリ", "居宅介護支援"}

	ProviderServices = []string{"訪問診療", "訪問看護", "訪問リハビリ", "居宅介護支援", "心臓リハビリ", "栄養指導", "薬剤指導", "緊急対応"}

	Weekdays = []string{"月", "火", "水", "木", "金", "土", "日"}

	TimeSlots = []string{"9:00-12:00", "13:00-17:00", "18:00-21:00"}

	Frequencies = []string{"週1回", "週2回", "週3回", "週4回以上", "月1-2回", "月3-4回"}

	FacilityTypes = []string{"クリニック", "病院", "訪問看護ステーション", "リハビリセンター", "居宅介護支援事業所"}
)
