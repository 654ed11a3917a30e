package service

import (
	"log"
	"sort"
	"time"

	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/repository"
	"golang.org/x/sync/errgroup"
)

// RankingService 排行榜快照服务
// 周期性地按近 7 天阅读量重算排行，rank 始终是从 1 开始的连续排列
type RankingService struct {
	repos *repository.Repositories
	limit int
}

// NewRankingService 创建排行榜服务
func NewRankingService(repos *repository.Repositories) *RankingService {
	return &RankingService{repos: repos, limit: 50}
}

// Start 启动定时重算任务
func (s *RankingService) Start() {
	ticker := time.NewTicker(1 * time.Hour)

	// 启动时先运行一次
	go s.runRebuild()

	go func() {
		for range ticker.C {
			s.runRebuild()
		}
	}()
}

func (s *RankingService) runRebuild() {
	log.Println("[RankingService] 开始重算排行榜快照...")

	var (
		g       errgroup.Group
		views   map[int]int
		current []*model.Ranking
	)

	// 周阅读量和当前快照可以并行取
	g.Go(func() error {
		var err error
		views, err = s.repos.Item.WeeklyViews()
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.repos.Ranking.ListCurrent(s.limit)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[RankingService] 读取排行数据失败: %v", err)
		return
	}

	snapshot := ComputeSnapshot(views, current, s.limit)
	if len(snapshot) == 0 {
		log.Println("[RankingService] 近 7 天没有阅读数据，保留现有快照")
		return
	}

	if err := s.repos.Ranking.ReplaceSnapshot(snapshot); err != nil {
		log.Printf("[RankingService] 写入快照失败: %v", err)
		return
	}
	log.Printf("[RankingService] 快照已更新，共 %d 条", len(snapshot))
}

// ComputeSnapshot 由周阅读量计算新快照
// 按阅读量降序，平局时按 item_id 升序保证结果稳定；previous_rank 取自上一份快照
func ComputeSnapshot(weeklyViews map[int]int, previous []*model.Ranking, limit int) []*model.Ranking {
	prevRank := make(map[int]int, len(previous))
	for _, p := range previous {
		prevRank[p.ItemID] = p.Rank
	}

	itemIDs := make([]int, 0, len(weeklyViews))
	for id := range weeklyViews {
		itemIDs = append(itemIDs, id)
	}
	sort.Slice(itemIDs, func(i, j int) bool {
		if weeklyViews[itemIDs[i]] != weeklyViews[itemIDs[j]] {
			return weeklyViews[itemIDs[i]] > weeklyViews[itemIDs[j]]
		}
		return itemIDs[i] < itemIDs[j]
	})
	if len(itemIDs) > limit {
		itemIDs = itemIDs[:limit]
	}

	now := time.Now()
	snapshot := make([]*model.Ranking, 0, len(itemIDs))
	for i, id := range itemIDs {
		entry := &model.Ranking{
			ItemID:      id,
			Rank:        i + 1,
			WeeklyViews: weeklyViews[id],
			UpdatedAt:   now,
		}
		if r, ok := prevRank[id]; ok {
			prev := r
			entry.PreviousRank = &prev
		}
		snapshot = append(snapshot, entry)
	}
	return snapshot
}
