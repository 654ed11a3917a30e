package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/user/novelle/internal/model"
)

// PaymentService Stripe 支付封装
type PaymentService struct {
	enabled bool
}

// NewPaymentService 创建支付服务，secretKey 为空时支付接口不可用
func NewPaymentService(secretKey string) *PaymentService {
	if secretKey == "" {
		return &PaymentService{enabled: false}
	}
	stripe.Key = secretKey
	return &PaymentService{enabled: true}
}

// ErrPaymentDisabled 未配置 Stripe 密钥
var ErrPaymentDisabled = errors.New("支付功能未启用")

// ErrPaymentNotSettled 支付尚未完成
var ErrPaymentNotSettled = errors.New("支付尚未完成")

// ErrPaymentMismatch 支付单与套餐或用户不匹配
var ErrPaymentMismatch = errors.New("支付单与订单不匹配")

// CreateIntent 为套餐创建 PaymentIntent，返回前端确认用的 client secret
func (s *PaymentService) CreateIntent(pkg *model.PointsPackage, userID int) (clientSecret, intentID string, err error) {
	if !s.enabled {
		return "", "", ErrPaymentDisabled
	}

	cents, err := ParsePriceCents(pkg.Price)
	if err != nil {
		return "", "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("package_id", strconv.Itoa(pkg.ID))
	params.AddMetadata("user_id", strconv.Itoa(userID))

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}
	return pi.ClientSecret, pi.ID, nil
}

// VerifySucceeded 确认 PaymentIntent 已支付成功，且金额与归属同下单时一致
func (s *PaymentService) VerifySucceeded(intentID string, pkg *model.PointsPackage, userID int) error {
	if !s.enabled {
		return ErrPaymentDisabled
	}

	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return err
	}
	return verifyIntent(pi, pkg, userID)
}

// verifyIntent 核对支付单：状态、金额、元数据里的套餐和用户
// 只看状态会让同一笔便宜单子兑换任意套餐，金额和元数据必须一起核对
func verifyIntent(pi *stripe.PaymentIntent, pkg *model.PointsPackage, userID int) error {
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrPaymentNotSettled
	}
	cents, err := ParsePriceCents(pkg.Price)
	if err != nil {
		return err
	}
	if pi.Amount != cents {
		return ErrPaymentMismatch
	}
	if pi.Metadata["package_id"] != strconv.Itoa(pkg.ID) {
		return ErrPaymentMismatch
	}
	if pi.Metadata["user_id"] != strconv.Itoa(userID) {
		return ErrPaymentMismatch
	}
	return nil
}

// ParsePriceCents 把 "$9.99" 这类价格串换算成美分
func ParsePriceCents(price string) (int64, error) {
	p := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	if p == "" {
		return 0, fmt.Errorf("价格格式不正确: %q", price)
	}

	parts := strings.SplitN(p, ".", 2)
	dollars, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("价格格式不正确: %q", price)
	}

	var cents int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) > 2 || frac == "" {
			return 0, fmt.Errorf("价格格式不正确: %q", price)
		}
		// ParseInt 会放过 "-9"、"+9" 这类带符号的小数部分
		for _, ch := range frac {
			if ch < '0' || ch > '9' {
				return 0, fmt.Errorf("价格格式不正确: %q", price)
			}
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("价格格式不正确: %q", price)
		}
	}

	return dollars*100 + cents, nil
}
