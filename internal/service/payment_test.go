package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/user/novelle/internal/model"
)

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		price string
		want  int64
		ok    bool
	}{
		{"$9.99", 999, true},
		{"$0.99", 99, true},
		{"9.99", 999, true},
		{"$10", 1000, true},
		{"$9.9", 990, true},
		{" $4.99 ", 499, true},
		{"$0", 0, true},
		{"", 0, false},
		{"$", 0, false},
		{"$9.999", 0, false},
		{"$9.", 0, false},
		{"abc", 0, false},
		{"$-5", 0, false},
		{"$9.-9", 0, false},
		{"$9.+9", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			got, err := ParsePriceCents(tc.price)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaymentServiceDisabled(t *testing.T) {
	// 未配置密钥时，所有支付操作都返回明确错误
	s := NewPaymentService("")

	_, _, err := s.CreateIntent(nil, 0)
	assert.ErrorIs(t, err, ErrPaymentDisabled)

	err = s.VerifySucceeded("pi_123", nil, 0)
	assert.ErrorIs(t, err, ErrPaymentDisabled)
}

func TestVerifyIntent(t *testing.T) {
	pkg := &model.PointsPackage{ID: 2, Price: "$9.99", Points: 500}
	good := func() *stripe.PaymentIntent {
		return &stripe.PaymentIntent{
			Status:   stripe.PaymentIntentStatusSucceeded,
			Amount:   999,
			Metadata: map[string]string{"package_id": "2", "user_id": "7"},
		}
	}

	t.Run("状态、金额、元数据全部一致才通过", func(t *testing.T) {
		assert.NoError(t, verifyIntent(good(), pkg, 7))
	})

	t.Run("未支付完成的单子不通过", func(t *testing.T) {
		pi := good()
		pi.Status = stripe.PaymentIntentStatusRequiresPaymentMethod
		assert.ErrorIs(t, verifyIntent(pi, pkg, 7), ErrPaymentNotSettled)
	})

	t.Run("便宜单子兑换贵套餐：金额不符被拒", func(t *testing.T) {
		expensive := &model.PointsPackage{ID: 3, Price: "$49.99", Points: 3000}
		pi := good()
		pi.Metadata["package_id"] = "3"
		assert.ErrorIs(t, verifyIntent(pi, expensive, 7), ErrPaymentMismatch)
	})

	t.Run("换一个 package_id 冒用同一笔支付被拒", func(t *testing.T) {
		other := &model.PointsPackage{ID: 5, Price: "$9.99", Points: 800}
		assert.ErrorIs(t, verifyIntent(good(), other, 7), ErrPaymentMismatch)
	})

	t.Run("别人的支付单不能给自己入账", func(t *testing.T) {
		assert.ErrorIs(t, verifyIntent(good(), pkg, 8), ErrPaymentMismatch)
	})
}
