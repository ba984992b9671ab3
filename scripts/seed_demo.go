// 写入演示数据脚本
//
// 建一个演示账号和两份示例配对测验（一份公开、一份私有），
// 用于本地联调或空库首次部署后的冒烟验证。重复执行会跳过已存在的演示账号。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"matchquiz_backend/internal/config"
	"matchquiz_backend/internal/model"
	"matchquiz_backend/internal/repository"
	"matchquiz_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	if _, err := userRepo.FindByUsername("demo"); err == nil {
		log.Println("演示账号已存在，跳过")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}
	user := &model.User{
		Username: "demo",
		Email:    "demo@example.com",
		Password: string(hashed),
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("创建演示账号失败: %v", err)
	}

	publicQuiz := &model.Quiz{
		UserID:      user.ID,
		Title:       "国家与首都",
		Description: "把左边的国家和右边的首都连起来",
		IsPublic:    true,
	}
	if err := quizRepo.CreateWithPairs(publicQuiz,
		&model.Question{UserPrompt: "把国家和它的首都连起来"},
		[]model.MatchingPair{
			{LeftText: "法国", RightText: "巴黎", Position: 1},
			{LeftText: "日本", RightText: "东京", Position: 2},
			{LeftText: "德国", RightText: "柏林", Position: 3},
			{LeftText: "西班牙", RightText: "马德里", Position: 4},
		}); err != nil {
		log.Fatalf("创建公开演示测验失败: %v", err)
	}

	privateQuiz := &model.Quiz{
		UserID:   user.ID,
		Title:    "化学符号",
		IsPublic: false,
	}
	if err := quizRepo.CreateWithPairs(privateQuiz,
		&model.Question{UserPrompt: "把元素和它的符号连起来"},
		[]model.MatchingPair{
			{LeftText: "氢", RightText: "H", Position: 1},
			{LeftText: "氧", RightText: "O", Position: 2},
			{LeftText: "金", RightText: "Au", Position: 3},
		}); err != nil {
		log.Fatalf("创建私有演示测验失败: %v", err)
	}

	log.Println("演示数据写入完成：账号 demo / demo-password")
}
