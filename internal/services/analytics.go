package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/models"
)

// StatusCount is one orders-by-status bucket.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryCount is one orders-by-category bucket.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ProductSales is one top-selling-product row.
type ProductSales struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// Summary is the admin dashboard aggregate.
type Summary struct {
	TotalSales         int64           `json:"totalSales"`
	TotalOrders        int64           `json:"totalOrders"`
	TotalAllOrders     int64           `json:"totalAllOrders"`
	PendingCollections int64           `json:"pendingCollections"`
	PendingOrders      int64           `json:"pendingOrders"`
	Currency           string          `json:"currency"`
	OrdersByStatus     []StatusCount   `json:"ordersByStatus"`
	OrdersByCategory   []CategoryCount `json:"ordersByCategory"`
	TopSellingProducts []ProductSales  `json:"topSellingProducts"`
	RecentOrders       []models.Order  `json:"recentOrders"`
	PaymentMethod      string          `json:"paymentMethod"`
}

const (
	recentOrdersWindow = 7 // days
	recentOrdersLimit  = 10
	topProductsLimit   = 5
)

// AnalyticsService computes admin dashboard aggregates.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

type moneyCount struct {
	Sum   int64
	Count int64
}

// Summarize builds the full dashboard aggregate.
func (s *AnalyticsService) Summarize() (*Summary, error) {
	summary := &Summary{
		Currency:      "INR",
		PaymentMethod: "Cash on Delivery Only",
	}

	paid, err := s.sumByPaymentStatus(models.PaymentPaid)
	if err != nil {
		return nil, err
	}
	summary.TotalSales = paid.Sum
	summary.TotalOrders = paid.Count

	pending, err := s.sumByPaymentStatus(models.PaymentPending)
	if err != nil {
		return nil, err
	}
	summary.PendingCollections = pending.Sum
	summary.PendingOrders = pending.Count

	if err := s.db.Model(&models.Order{}).Count(&summary.TotalAllOrders).Error; err != nil {
		return nil, apperrors.Store(err, "failed to count orders")
	}

	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&summary.OrdersByStatus).Error; err != nil {
		return nil, apperrors.Store(err, "failed to group orders by status")
	}

	since := s.now().AddDate(0, 0, -recentOrdersWindow)
	if err := s.db.Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Limit(recentOrdersLimit).
		Find(&summary.RecentOrders).Error; err != nil {
		return nil, apperrors.Store(err, "failed to load recent orders")
	}

	byCategory, topProducts, err := s.itemRollups()
	if err != nil {
		return nil, err
	}
	summary.OrdersByCategory = byCategory
	summary.TopSellingProducts = topProducts

	return summary, nil
}

func (s *AnalyticsService) sumByPaymentStatus(paymentStatus string) (moneyCount, error) {
	var row moneyCount
	err := s.db.Model(&models.Order{}).
		Where("payment_status = ?", paymentStatus).
		Select("COALESCE(SUM(total), 0) as sum, COUNT(*) as count").
		Scan(&row).Error
	if err != nil {
		return row, apperrors.Store(err, "failed to aggregate orders")
	}
	return row, nil
}

// itemRollups aggregates the per-order item snapshots in memory. Categories
// are resolved through the live product table; snapshots of since-deleted
// products simply fall out of the category buckets but keep their name for
// the top-seller list.
func (s *AnalyticsService) itemRollups() ([]CategoryCount, []ProductSales, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, nil, apperrors.Store(err, "failed to load products")
	}
	categoryOf := make(map[uint]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	var orders []models.Order
	if err := s.db.Select("id", "items").Find(&orders).Error; err != nil {
		return nil, nil, apperrors.Store(err, "failed to load order items")
	}

	categoryCounts := make(map[string]int64)
	sold := make(map[uint]*ProductSales)
	for _, order := range orders {
		for _, item := range order.Items {
			if category, ok := categoryOf[item.ProductID]; ok {
				categoryCounts[category]++
			}
			entry, ok := sold[item.ProductID]
			if !ok {
				entry = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				sold[item.ProductID] = entry
			}
			entry.TotalSold += int64(item.Quantity)
		}
	}

	byCategory := make([]CategoryCount, 0, len(categoryCounts))
	for category, count := range categoryCounts {
		byCategory = append(byCategory, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Count != byCategory[j].Count {
			return byCategory[i].Count > byCategory[j].Count
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	topProducts := make([]ProductSales, 0, len(sold))
	for _, entry := range sold {
		topProducts = append(topProducts, *entry)
	}
	sort.Slice(topProducts, func(i, j int) bool {
		if topProducts[i].TotalSold != topProducts[j].TotalSold {
			return topProducts[i].TotalSold > topProducts[j].TotalSold
		}
		return topProducts[i].ProductID < topProducts[j].ProductID
	})
	if len(topProducts) > topProductsLimit {
		topProducts = topProducts[:topProductsLimit]
	}

	return byCategory, topProducts, nil
}
