package wire

import (
	"community/internal/api"
	"community/internal/api/handler"
	"community/internal/job"
	"community/internal/pkg/cron"
	"community/internal/repository"
	"community/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
	ViewCache   *service.ViewCountCache
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	statsRepo := repository.NewPostStatsRepository(db)
	imageRepo := repository.NewPostImageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	viewCache := service.NewViewCountCache(statsRepo)

	userService := service.NewUserService(userRepo)
	imageService := service.NewImageService()
	postService := service.NewPostService(postRepo, statsRepo, imageRepo, commentRepo, likeRepo, userRepo, viewCache, imageService)
	commentService := service.NewCommentService(commentRepo, postRepo, statsRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, postRepo, statsRepo, userRepo)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		PostHandler:    handler.NewPostHandler(postService),
		CommentHandler: handler.NewCommentHandler(commentService),
		LikeHandler:    handler.NewLikeHandler(likeService),
		ImageHandler:   handler.NewImageHandler(imageService),
	}

	router := api.SetupRouter(handlers)

	viewSyncJob := job.NewViewSyncJob(viewCache)
	reconcileJob := job.NewStatsReconcileJob(statsRepo, likeRepo, commentRepo)
	cronMgr := cron.NewCronManager(viewSyncJob, reconcileJob)

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
		ViewCache:   viewCache,
	}, nil
}
