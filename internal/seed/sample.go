// Package seed provides the demo dataset loaded into an empty registry.
package seed

import (
	"context"
	"fmt"
	"time"

	"heart-matching-backend/internal/models"

	"gorm.io/datatypes"
)

// Loader is the part of the registry the seeder writes through
type Loader interface {
	Replace(ctx context.Context, patients []models.Patient, facilities []models.Facility,
		messages map[string][]models.ChatMessage, negotiations map[string]models.Negotiation) error
}

// Load replaces the registry contents with the sample dataset
func Load(ctx context.Context, registry Loader) error {
	if err := registry.Replace(ctx, Patients(), Facilities(), Messages(), Negotiations()); err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}
	return nil
}

func set(values ...string) datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](values)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Patients returns the sample patients, all available with no applications
func Patients() []models.Patient {
	return []models.Patient{
		{
			ID:                 "HF-ABC123",
			AgeGroup:           "70代",
			Gender:             "男性",
			Diagnosis:          "慢性心不全",
			NYHAClass:          "Ⅱ",
			MedicalTreatment:   "在宅酸素",
			CareLevel:          "要介護2",
			Area:               "墨田区押上エリア",
			DesiredService:     "訪問診療",
			PreferredDays:      set("月", "水", "金"),
			PreferredTimeSlots: set("9:00-12:00"),
			Frequency:          "週3回",
			Facility:           "押上クリニック",
			ContactPhone:       "03-1234-5678",
			ContactEmail:       "info@oshiage-clinic.jp",
			RegistrationDate:   date("2024-06-15"),
			Status:             models.PatientAvailable,
			Applications:       []models.Application{},
		},
		{
			ID:                 "HF-DEF456",
			AgeGroup:           "80代以上",
			Gender:             "女性",
			Diagnosis:          "心不全",
			NYHAClass:          "Ⅲ",
			MedicalTreatment:   "点滴",
			CareLevel:          "要介護3",
			Area:               "江東区豊洲エリア",
			DesiredService:     "訪問看護",
			PreferredDays:      set("火", "木", "土"),
			PreferredTimeSlots: set("13:00-17:00"),
			Frequency:          "週3回",
			Facility:           "豊洲総合病院",
			ContactPhone:       "03-9876-5432",
			ContactEmail:       "contact@toyosu-hospital.jp",
			RegistrationDate:   date("2024-06-20"),
			Status:             models.PatientAvailable,
			Applications:       []models.Application{},
		},
		{
			ID:                 "HF-GHI789",
			AgeGroup:           "60代",
			Gender:             "男性",
			Diagnosis:          "拡張型心筋症",
			NYHAClass:          "Ⅱ",
			MedicalTreatment:   "ペースメーカー",
			CareLevel:          "要介護1",
			Area:               "江戸川区西葛西エリア",
			DesiredService:     "訪問リハビリ",
			PreferredDays:      set("月", "水", "金"),
			PreferredTimeSlots: set("13:00-17:00"),
			Frequency:          "週3回",
			Facility:           "西葛西メディカルセンター",
			ContactPhone:       "03-5555-1234",
			ContactEmail:       "info@nishikasai-mc.jp",
			RegistrationDate:   date("2024-06-22"),
			Status:             models.PatientAvailable,
			Applications:       []models.Application{},
		},
	}
}

// Facilities returns the sample facilities
func Facilities() []models.Facility {
	return []models.Facility{
		{
			ID:                 "FAC001",
			Name:               "押上クリニック",
			FacilityType:       "クリニック",
			Area:               "墨田区押上エリア",
			Address:            "東京都墨田区押上1-1-1",
			Phone:              "03-1234-5678",
			Email:              "info@oshiage-clinic.jp",
			AvailableDays:      set("月", "火", "水", "木", "金"),
			AvailableTimeSlots: set("9:00-12:00", "13:00-17:00"),
			ProvidedServices:   set("訪問診療", "心臓リハビリ", "栄養指導"),
			Specialties:        set("循環器内科", "内科"),
			Features:           set("24時間対応", "往診車配備"),
			MaxPatients:        30,
			CurrentPatients:    15,
			RegistrationDate:   date("2024-06-01"),
		},
		{
			ID:                 "FAC002",
			Name:               "豊洲総合病院",
			FacilityType:       "病院",
			Area:               "江東区豊洲エリア",
			Address:            "東京都江東区豊洲2-2-2",
			Phone:              "03-9876-5432",
			Email:              "contact@toyosu-hospital.jp",
			AvailableDays:      set("月", "火", "水", "木", "金", "土"),
			AvailableTimeSlots: set("9:00-12:00", "13:00-17:00", "18:00-21:00"),
			ProvidedServices:   set("訪問診療", "訪問看護", "心臓リハビリ", "緊急対応"),
			Specialties:        set("循環器内科", "心臓血管外科", "内科"),
			Features:           set("24時間緊急対応", "ICU完備", "専門医常駐"),
			MaxPatients:        50,
			CurrentPatients:    35,
			RegistrationDate:   date("2024-05-15"),
		},
		{
			ID:                 "FAC003",
			Name:               "西葛西メディカルセンター",
			FacilityType:       "クリニック",
			Area:               "江戸川区西葛西エリア",
			Address:            "東京都江戸川区西葛西3-3-3",
			Phone:              "03-5555-1234",
			Email:              "info@nishikasai-mc.jp",
			AvailableDays:      set("月", "火", "水", "金", "土"),
			AvailableTimeSlots: set("9:00-12:00", "13:00-17:00"),
			ProvidedServices:   set("訪問リハビリ", "心臓リハビリ", "栄養指導"),
			Specialties:        set("リハビリテーション科", "循環器内科"),
			Features:           set("リハビリ専門", "理学療法士常駐"),
			MaxPatients:        25,
			CurrentPatients:    18,
			RegistrationDate:   date("2024-06-10"),
		},
		{
			ID:                 "FAC004",
			Name:               "ハートケア訪問看護ステーション",
			FacilityType:       "訪問看護ステーション",
			Area:               "墨田区錦糸町エリア",
			Address:            "東京都墨田区錦糸町4-4-4",
			Phone:              "03-7777-8888",
			Email:              "contact@heartcare-vn.jp",
			AvailableDays:      set("月", "火", "水", "木", "金", "土", "日"),
			AvailableTimeSlots: set("9:00-12:00", "13:00-17:00", "18:00-21:00"),
			ProvidedServices:   set("訪問看護", "薬剤指導", "緊急対応"),
			Specialties:        set("心不全ケア", "在宅医療"),
			Features:           set("24時間対応", "看護師24名体制", "薬剤師連携"),
			MaxPatients:        40,
			CurrentPatients:    28,
			RegistrationDate:   date("2024-05-20"),
		},
		// Responds in the HF-ABC123 chat
		{
			ID:                 "FAC005",
			Name:               "墨田区訪問診療センター",
			FacilityType:       "クリニック",
			Area:               "墨田区押上エリア",
			Address:            "東京都墨田区押上5-5-5",
			Phone:              "03-3333-4444",
			Email:              "info@sumida-homecare.jp",
			AvailableDays:      set("月", "水", "金"),
			AvailableTimeSlots: set("9:00-12:00"),
			ProvidedServices:   set("訪問診療"),
			Specialties:        set("内科"),
			Features:           set("往診車配備"),
			MaxPatients:        20,
			CurrentPatients:    8,
			RegistrationDate:   date("2024-06-05"),
		},
	}
}

// Messages returns the sample chat logs keyed by patient ID
func Messages() map[string][]models.ChatMessage {
	return map[string][]models.ChatMessage{
		"HF-ABC123": {
			{
				ID:          "msg_001",
				PatientID:   "HF-ABC123",
				ChatID:      "chat_HF-ABC123",
				SenderName:  "押上クリニック",
				Message:     "こちらの患者様について、受け入れ可能でしょうか？",
				MessageType: models.MessageText,
				Timestamp:   ts("2024-07-01T09:30:00Z"),
				IsRead:      true,
			},
			{
				ID:          "msg_002",
				PatientID:   "HF-ABC123",
				ChatID:      "chat_HF-ABC123",
				SenderName:  "墨田区訪問診療センター",
				Message:     "詳細を確認させていただきます。現在の服薬状況を教えていただけますか？",
				MessageType: models.MessageText,
				Timestamp:   ts("2024-07-01T10:15:00Z"),
				IsRead:      true,
			},
			{
				ID:          "msg_003",
				PatientID:   "HF-ABC123",
				ChatID:      "chat_HF-ABC123",
				SenderName:  "押上クリニック",
				Message:     "フロセミド40mg、カルベジロール2.5mgを服用中です。ADL状況のレポートを添付いたします。",
				MessageType: models.MessageText,
				Timestamp:   ts("2024-07-01T10:45:00Z"),
				IsRead:      false,
			},
		},
		"HF-DEF456": {
			{
				ID:          "msg_004",
				PatientID:   "HF-DEF456",
				ChatID:      "chat_HF-DEF456",
				SenderName:  "豊洲総合病院",
				Message:     "80代女性、NYHA class Ⅲの患者様です。訪問看護での対応は可能でしょうか？",
				MessageType: models.MessageText,
				Timestamp:   ts("2024-07-01T11:00:00Z"),
				IsRead:      true,
			},
		},
	}
}

// Negotiations returns the sample negotiation records keyed by patient ID
func Negotiations() map[string]models.Negotiation {
	responder := "墨田区訪問診療センター"
	return map[string]models.Negotiation{
		"HF-ABC123": {
			ID:                 "matching_001",
			PatientID:          "HF-ABC123",
			RequestingFacility: "押上クリニック",
			RespondingFacility: &responder,
			Status:             models.NegotiationConsulting,
			CreatedAt:          ts("2024-07-01T09:30:00Z"),
			UpdatedAt:          ts("2024-07-01T10:45:00Z"),
		},
		"HF-DEF456": {
			ID:                 "matching_002",
			PatientID:          "HF-DEF456",
			RequestingFacility: "豊洲総合病院",
			Status:             models.NegotiationRequesting,
			CreatedAt:          ts("2024-07-01T11:00:00Z"),
			UpdatedAt:          ts("2024-07-01T11:00:00Z"),
		},
	}
}
