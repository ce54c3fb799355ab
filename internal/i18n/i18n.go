package i18n

import (
	"net/http"
	"strings"
)

type Locale string

const (
	En Locale = "en"
	Ar Locale = "ar"
)

// Strings holds every user-facing message the API emits. Handlers receive
// a Strings value looked up per request instead of reading a process-wide
// language setting.
type Strings struct {
	AllFieldsRequired string
	NotFound          string
	InvalidBody       string
	InvalidDiscount   string
	CategoryNotFound  string

	PlanCreated      string
	PlanUpdated      string
	PlanDeleted      string
	PlanSaveFailed   string
	PlanDeleteFailed string

	ProductCreated      string
	ProductUpdated      string
	ProductDeleted      string
	ProductSaveFailed   string
	ProductDeleteFailed string

	OrderCompleted      string
	OrderCanceled       string
	OrderUpdateFailed   string
	OrderAlreadyFinal   string
	OrderActionInFlight string
	OrderFetchFailed    string

	TimeSlotsSaved      string
	TimeSlotsDeleted    string
	TimeSlotsSaveFailed string
	TimeSlotRequired    string

	CategorySaved        string
	CategoryDeleted      string
	CategorySaveFailed   string
	CategoryDeleteFailed string

	ImageUploadFailed string
	NoImagesProvided  string
}

var table = map[Locale]Strings{
	En: {
		AllFieldsRequired: "All fields are required",
		NotFound:          "Not found",
		InvalidBody:       "Invalid request body",
		InvalidDiscount:   "Discount percentage is not permitted",
		CategoryNotFound:  "Category not found",

		PlanCreated:      "Plan created",
		PlanUpdated:      "Plan updated successfully",
		PlanDeleted:      "Plan deleted",
		PlanSaveFailed:   "Failed to save plan",
		PlanDeleteFailed: "Failed to delete plan",

		ProductCreated:      "Product created",
		ProductUpdated:      "Product updated",
		ProductDeleted:      "Product deleted",
		ProductSaveFailed:   "Failed to save product",
		ProductDeleteFailed: "Failed to delete product",

		OrderCompleted:      "Order marked as completed",
		OrderCanceled:       "Order canceled",
		OrderUpdateFailed:   "Failed to update order",
		OrderAlreadyFinal:   "Order is already completed or canceled",
		OrderActionInFlight: "Another update for this order is in progress",
		OrderFetchFailed:    "Failed to load orders",

		TimeSlotsSaved:      "Time slots saved",
		TimeSlotsDeleted:    "Time deleted",
		TimeSlotsSaveFailed: "Failed to save time slots",
		TimeSlotRequired:    "At least one date and one time slot are required",

		CategorySaved:        "Category saved",
		CategoryDeleted:      "Category deleted",
		CategorySaveFailed:   "Failed to save category",
		CategoryDeleteFailed: "Failed to delete category",

		ImageUploadFailed: "Image upload failed",
		NoImagesProvided:  "No images provided",
	},
	Ar: {
		AllFieldsRequired: "جميع الحقول مطلوبة",
		NotFound:          "غير موجود",
		InvalidBody:       "طلب غير صالح",
		InvalidDiscount:   "نسبة الخصم غير مسموح بها",
		CategoryNotFound:  "التصنيف غير موجود",

		PlanCreated:      "تم انشاء الباقة",
		PlanUpdated:      "تم تحديث الباقة",
		PlanDeleted:      "تم حذف الباقة",
		PlanSaveFailed:   "فشل حفظ الباقة",
		PlanDeleteFailed: "فشل حذف الباقة",

		ProductCreated:      "تم انشاء المنتج",
		ProductUpdated:      "تم تحديث المنتج",
		ProductDeleted:      "تم حذف المنتج",
		ProductSaveFailed:   "فشل حفظ المنتج",
		ProductDeleteFailed: "فشل حذف المنتج",

		OrderCompleted:      "تم التحديث إلى مكتمل",
		OrderCanceled:       "تم إلغاء الطلب",
		OrderUpdateFailed:   "فشل التحديث",
		OrderAlreadyFinal:   "الطلب مكتمل أو ملغى بالفعل",
		OrderActionInFlight: "يوجد تحديث آخر قيد التنفيذ لهذا الطلب",
		OrderFetchFailed:    "فشل تحميل الطلبات",

		TimeSlotsSaved:      "تم حفظ المواعيد",
		TimeSlotsDeleted:    "تم حذف الموعد",
		TimeSlotsSaveFailed: "فشل حفظ المواعيد",
		TimeSlotRequired:    "مطلوب تاريخ واحد وموعد واحد على الأقل",

		CategorySaved:        "تم حفظ التصنيف",
		CategoryDeleted:      "تم حذف التصنيف",
		CategorySaveFailed:   "فشل حفظ التصنيف",
		CategoryDeleteFailed: "فشل حذف التصنيف",

		ImageUploadFailed: "فشل رفع الصور",
		NoImagesProvided:  "لم يتم إرفاق صور",
	},
}

// T returns the string table for a locale, falling back to English.
func T(l Locale) Strings {
	if s, ok := table[l]; ok {
		return s
	}
	return table[En]
}

// FromRequest resolves the request locale: explicit lang query param
// first, then the Accept-Language header, defaulting to English.
func FromRequest(r *http.Request) Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return normalize(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return normalize(strings.SplitN(accept, ",", 2)[0])
	}
	return En
}

func normalize(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "ar" || strings.HasPrefix(tag, "ar-") {
		return Ar
	}
	return En
}
