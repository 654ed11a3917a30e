package i18n

// locales 界面文案表
// en 为默认语言，必须覆盖全部 key；其余语言允许缺项，缺项时回退到 en
var locales = map[string]map[string]string{
	"en": {
		"nav.home":           "Home",
		"nav.rankings":       "Rankings",
		"nav.canvas":         "Canvas",
		"nav.library":        "Library",
		"nav.points":         "Points",
		"nav.login":          "Sign in",
		"nav.logout":         "Sign out",
		"home.featured":      "Featured",
		"home.newArrivals":   "New Arrivals",
		"home.viewAll":       "View all",
		"item.readNow":       "Read now",
		"item.views":         "Views",
		"item.likes":         "Likes",
		"item.similar":       "You may also like",
		"rankings.title":     "Weekly Rankings",
		"rankings.up":        "Up",
		"rankings.down":      "Down",
		"rankings.new":       "New",
		"points.title":       "Points Shop",
		"points.balance":     "Your balance",
		"points.purchase":    "Purchase",
		"points.popular":     "Most popular",
		"points.discount":    "OFF",
		"points.success":     "Purchase complete. Points have been added.",
		"points.failed":      "Payment failed. Please try again.",
		"auth.googleLogin":   "Continue with Google",
		"auth.welcome":       "Welcome back",
		"error.notFound":     "Not found",
		"error.server":       "Something went wrong. Please try again later.",
		"error.unauthorized": "Please sign in first",
	},
	"ja": {
		"nav.home":         "ホーム",
		"nav.rankings":     "ランキング",
		"nav.canvas":       "キャンバス",
		"nav.library":      "本棚",
		"nav.points":       "ポイント",
		"nav.login":        "ログイン",
		"nav.logout":       "ログアウト",
		"home.featured":    "おすすめ",
		"home.newArrivals": "新着",
		"home.viewAll":     "すべて見る",
		"item.readNow":     "今すぐ読む",
		"item.views":       "閲覧数",
		"item.likes":       "いいね",
		"item.similar":     "こちらもおすすめ",
		"rankings.title":   "週間ランキング",
		"points.title":     "ポイントショップ",
		"points.balance":   "残高",
		"points.purchase":  "購入する",
		"points.popular":   "一番人気",
		"points.success":   "購入が完了しました。ポイントが追加されました。",
		"points.failed":    "決済に失敗しました。もう一度お試しください。",
		"auth.googleLogin": "Google でログイン",
		"error.notFound":   "見つかりませんでした",
		"error.server":     "エラーが発生しました。しばらくしてからお試しください。",
	},
	"zh": {
		"nav.home":         "首页",
		"nav.rankings":     "排行榜",
		"nav.canvas":       "条漫",
		"nav.library":      "书架",
		"nav.points":       "积分",
		"nav.login":        "登录",
		"nav.logout":       "退出登录",
		"home.featured":    "编辑推荐",
		"home.newArrivals": "最新上架",
		"home.viewAll":     "查看全部",
		"item.readNow":     "立即阅读",
		"item.views":       "浏览量",
		"item.likes":       "点赞",
		"item.similar":     "猜你喜欢",
		"rankings.title":   "周榜",
		"points.title":     "积分商城",
		"points.balance":   "当前余额",
		"points.purchase":  "购买",
		"points.popular":   "最受欢迎",
		"points.success":   "购买成功，积分已到账。",
		"points.failed":    "支付失败，请重试。",
		"auth.googleLogin": "使用 Google 登录",
		"error.notFound":   "未找到相关内容",
		"error.server":     "服务器开小差了，请稍后再试。",
	},
}

// Keys 返回默认语言表中的全部 key（测试与校验用）
func Keys() []string {
	keys := make([]string, 0, len(locales[DefaultLanguage]))
	for k := range locales[DefaultLanguage] {
		keys = append(keys, k)
	}
	return keys
}
