package main

// General API documentation for swaggo. Build with -tags=swagger to serve the UI.
//
// @title           titand API
// @version         1.0
// @description     Local HTTP front for the Bedrock Titan invocation handler.
//
// @contact.name   titand maintainers
// @contact.url    https://github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda
//
// @BasePath  /
//
// @schemes http
